package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/registry"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search the player index by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 25, "maximum results to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	db, err := registry.Open(registryPath())
	if err != nil {
		return fmt.Errorf("open index (run 'milbstats index' first): %w", err)
	}
	defer db.Close()

	entries, err := db.SearchByName(query, searchLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stdout, "No players matching %q. Run 'milbstats index' to rebuild the index.\n", query)
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("ID", "NAME", "TYPE", "TEAM", "LEVEL", "LAST SEEN")
	for _, e := range entries {
		team := e.Team
		if team == "" {
			team = "—"
		}
		level := e.Level
		if level == "" {
			level = "—"
		}
		table.Append(e.ID, e.Name, e.Type, team, level, fmt.Sprintf("%d-%02d", e.LastYear, e.LastMonth))
	}
	table.Render()
	return nil
}
