// Package report renders computed advanced stats as CLI tables.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/prospectlab/milbstats/internal/model"
)

// statColumns is the column order of every rate table.
var statColumns = []string{
	model.StatBIP,
	model.StatGB, model.StatFB, model.StatLD, model.StatHRFB,
	model.StatPull, model.StatPullAir,
	model.StatSwing, model.StatContact, model.StatCSW,
}

// Row is one line of a rate-stat table.
type Row struct {
	Label string
	Stats model.RateStats
}

var sectionColor = color.New(color.FgCyan, color.Bold)

// PrintSection prints a highlighted section header.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	sectionColor.Fprintln(w, title)
}

// PrintRateTable prints one rate-stat table; gated-out stats render as "—".
func PrintRateTable(w io.Writer, labelHeader string, rows []Row) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := make([]any, 0, len(statColumns)+1)
	header = append(header, labelHeader)
	for _, col := range statColumns {
		header = append(header, col)
	}
	table.Header(header...)

	for _, r := range rows {
		cells := make([]any, 0, len(statColumns)+1)
		cells = append(cells, r.Label)
		for _, col := range statColumns {
			cells = append(cells, formatStat(col, r.Stats))
		}
		table.Append(cells...)
	}
	table.Render()
}

// SplitRows orders vsL before vsR.
func SplitRows(splits map[string]model.RateStats) []Row {
	var rows []Row
	for _, side := range []string{model.SplitVsLeft, model.SplitVsRight} {
		if stats, ok := splits[side]; ok {
			rows = append(rows, Row{Label: side, Stats: stats})
		}
	}
	return rows
}

// LevelRows orders levels highest tier first.
func LevelRows(byLevel map[string]model.RateStats) []Row {
	var rows []Row
	for _, level := range model.Levels {
		if stats, ok := byLevel[level]; ok {
			rows = append(rows, Row{Label: level, Stats: stats})
		}
	}
	// Unknown level names, if any, go last in lexical order.
	var extra []string
	for level := range byLevel {
		if !knownLevel(level) {
			extra = append(extra, level)
		}
	}
	sort.Strings(extra)
	for _, level := range extra {
		rows = append(rows, Row{Label: level, Stats: byLevel[level]})
	}
	return rows
}

func knownLevel(level string) bool {
	for _, l := range model.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// formatStat renders one stat cell. Rates display as percentages; HR/FB
// stays a ratio and BIP a count. Missing (gated-out) stats render as "—".
func formatStat(key string, stats model.RateStats) string {
	v, ok := stats[key]
	if !ok {
		return "—"
	}
	switch key {
	case model.StatBIP:
		return fmt.Sprintf("%.0f", v)
	case model.StatHRFB:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.1f%%", v*100)
	}
}
