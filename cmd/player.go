package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/aggregator"
	"github.com/prospectlab/milbstats/internal/model"
	"github.com/prospectlab/milbstats/internal/pbpstore"
	"github.com/prospectlab/milbstats/internal/report"
)

var playerMonth string

// playerCmd computes and prints one or more players' advanced stats for a
// month, from the stored play-by-play data.
var playerCmd = &cobra.Command{
	Use:   "player <playerId> [<playerId>...]",
	Short: "Show a player's advanced stats for a month",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerMonth, "month", "", "month to compute (YYYY-MM, required)")
	_ = playerCmd.MarkFlagRequired("month")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	year, month, err := parseMonth(playerMonth)
	if err != nil {
		return err
	}

	store := pbpstore.New(dataDir)
	games, err := store.LoadMonth(year, month)
	if err != nil {
		return fmt.Errorf("load PBP for %s: %w", playerMonth, err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no play-by-play data for %s; run 'milbstats fetch --month %s' first", playerMonth, playerMonth)
	}

	res := aggregator.Aggregate(games, cfg.Aggregator())
	gameLabels := buildGameLabels(games)

	for _, arg := range args {
		if _, err := strconv.Atoi(arg); err != nil {
			return fmt.Errorf("invalid player id %q: %w", arg, err)
		}
		found := false
		if _, ok := res.Batting.Overall[arg]; ok {
			printPlayerView(arg, "Batting", res.Batting, gameLabels)
			found = true
		}
		if _, ok := res.Pitching.Overall[arg]; ok {
			printPlayerView(arg, "Pitching", res.Pitching, gameLabels)
			found = true
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No data found for player %s in %s\n", arg, playerMonth)
		}
	}
	return nil
}

// printPlayerView prints one role's overall, split, level, and game tables.
func printPlayerView(id, role string, view aggregator.View, gameLabels map[string]string) {
	name := view.Names[id]
	if name == "" {
		name = id
	}
	report.PrintSection(os.Stdout, fmt.Sprintf("%s — %s (%s)", name, role, id))

	report.PrintRateTable(os.Stdout, "OVERALL", []report.Row{{Label: "Total", Stats: view.Overall[id]}})

	if rows := report.SplitRows(view.Splits[id]); len(rows) > 0 {
		fmt.Fprintln(os.Stdout)
		report.PrintRateTable(os.Stdout, "SPLIT", rows)
	}

	if levels := view.ByLevel[id]; len(levels) > 1 {
		fmt.Fprintln(os.Stdout)
		report.PrintRateTable(os.Stdout, "LEVEL", report.LevelRows(levels))
	}

	if rows := gameRows(view.PerGame[id], gameLabels); len(rows) > 0 {
		fmt.Fprintln(os.Stdout)
		report.PrintRateTable(os.Stdout, "GAME", rows)
	}
}

// buildGameLabels maps game ids to "date away @ home" labels.
func buildGameLabels(games []model.Game) map[string]string {
	labels := make(map[string]string, len(games))
	for i := range games {
		g := &games[i]
		labels[strconv.Itoa(g.GamePk)] = fmt.Sprintf("%s  %s @ %s", g.Date, g.AwayTeam.Name, g.HomeTeam.Name)
	}
	return labels
}

// gameRows orders a player's per-game stats by label (date first).
func gameRows(perGame map[string]model.RateStats, labels map[string]string) []report.Row {
	rows := make([]report.Row, 0, len(perGame))
	for gameID, stats := range perGame {
		label := labels[gameID]
		if label == "" {
			label = gameID
		}
		rows = append(rows, report.Row{Label: label, Stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}
