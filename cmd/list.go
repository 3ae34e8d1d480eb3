package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/pbpstore"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List months with stored play-by-play and stats data",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store := pbpstore.New(dataDir)

	years, err := store.Years()
	if err != nil {
		return fmt.Errorf("list years: %w", err)
	}

	statsMonths, err := store.StatsMonths()
	if err != nil {
		return fmt.Errorf("list stats months: %w", err)
	}
	hasStats := make(map[[2]int]bool, len(statsMonths))
	for _, ref := range statsMonths {
		hasStats[[2]int{ref.Year, ref.Month}] = true
	}

	if len(years) == 0 && len(statsMonths) == 0 {
		fmt.Fprintln(os.Stdout, "No data stored yet. Run 'milbstats fetch --yesterday' to start.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-6s  %5s  %s\n", "MONTH", "DAYS", "STATS", "")
	fmt.Fprintf(os.Stdout, "%-8s  %-6s  %5s  %s\n", "────────", "──────", "─────", "")
	for _, year := range years {
		manifest, err := store.LoadManifest(year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [warn] %v\n", err)
			continue
		}
		if manifest == nil {
			continue
		}
		months := make([]int, 0, len(manifest.Months))
		for m := range manifest.Months {
			months = append(months, m)
		}
		sort.Ints(months)
		for _, m := range months {
			stats := ""
			if hasStats[[2]int{year, m}] {
				stats = "yes"
			}
			fmt.Fprintf(os.Stdout, "%d-%02d  %6d  %5s\n", year, m, len(manifest.Months[m]), stats)
		}
	}

	// Stats months with no PBP yet (fetched by the stats fetcher alone).
	for _, ref := range statsMonths {
		if manifest, err := store.LoadManifest(ref.Year); err == nil && manifest != nil {
			if _, ok := manifest.Months[ref.Month]; ok {
				continue
			}
		}
		fmt.Fprintf(os.Stdout, "%d-%02d  %6d  %5s\n", ref.Year, ref.Month, 0, "yes")
	}
	return nil
}
