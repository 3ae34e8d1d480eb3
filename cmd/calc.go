package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/aggregator"
	"github.com/prospectlab/milbstats/internal/merge"
	"github.com/prospectlab/milbstats/internal/pbpstore"
)

// calc command flags.
var (
	calcMonth     string
	calcDate      string
	calcYear      int
	calcYesterday bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute advanced stats from stored play-by-play data",
	Long: `Computes advanced stats (GB%/FB%/LD%, HR/FB, Pull%, Swing%, Contact%, CSW%)
from stored play-by-play data and merges them into the monthly stats files.

Only players already present in a month's stats file are updated; new
players enter through the stats fetcher, not through this command.

Examples:
  # Recompute one month
  milbstats calc --month 2025-06

  # Nightly run: recompute the month containing yesterday
  milbstats calc --yesterday

  # Full season (April through September)
  milbstats calc --year 2025`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcMonth, "month", "", "compute for a month (YYYY-MM)")
	calcCmd.Flags().StringVar(&calcDate, "date", "", "compute for the month containing this date (YYYY-MM-DD)")
	calcCmd.Flags().IntVar(&calcYear, "year", 0, "compute for a full season")
	calcCmd.Flags().BoolVar(&calcYesterday, "yesterday", false, "compute for the month containing yesterday")
	calcCmd.MarkFlagsOneRequired("month", "date", "year", "yesterday")
	calcCmd.MarkFlagsMutuallyExclusive("month", "date", "year", "yesterday")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := pbpstore.New(dataDir)

	type ym struct{ year, month int }
	var targets []ym

	switch {
	case calcMonth != "":
		year, month, err := parseMonth(calcMonth)
		if err != nil {
			return err
		}
		targets = []ym{{year, month}}
	case calcDate != "" || calcYesterday:
		date := calcDate
		if calcYesterday {
			date = yesterdayDate()
		}
		date, err := parseDate(date)
		if err != nil {
			return err
		}
		// A single date still recomputes its whole month so cumulative
		// stats stay correct.
		year, month, err := parseMonth(date[:7])
		if err != nil {
			return err
		}
		targets = []ym{{year, month}}
	case calcYear != 0:
		for _, month := range seasonMonths {
			targets = append(targets, ym{calcYear, month})
		}
	}

	total := 0
	for _, t := range targets {
		updated, err := calcForMonth(store, cfg.Aggregator(), t.year, t.month)
		if err != nil {
			return err
		}
		total += updated
	}
	fmt.Printf("\nDone: %d player records updated\n", total)
	return nil
}

// calcForMonth recomputes one month: load its PBP, aggregate, merge into
// the monthly stats file, and save.
func calcForMonth(store *pbpstore.Store, cfg aggregator.Config, year, month int) (int, error) {
	fmt.Printf("Calculating advanced stats for %d-%02d\n", year, month)

	games, err := store.LoadMonth(year, month)
	if err != nil {
		return 0, fmt.Errorf("load PBP for %d-%02d: %w", year, month, err)
	}
	if len(games) == 0 {
		fmt.Printf("  no play-by-play data for %d-%02d\n", year, month)
		return 0, nil
	}
	fmt.Printf("  processing %d games\n", len(games))

	res := aggregator.Aggregate(games, cfg)

	monthly, err := store.LoadMonthlyStats(year, month)
	if err != nil {
		return 0, err
	}

	updated := 0
	updated += mergeView(monthly.Players, res.Batting, "batting")
	updated += mergeView(monthly.Players, res.Pitching, "pitching")

	if err := store.SaveMonthlyStats(monthly); err != nil {
		return 0, err
	}
	fmt.Printf("  updated %d players\n", updated)
	return updated, nil
}

// mergeView folds one role's computed stats into the players that already
// exist in the monthly file. Players seen in PBP but absent from the file
// are skipped; they belong to the stats fetcher.
func mergeView(players map[string]map[string]any, view aggregator.View, statType string) int {
	updated := 0
	for id, stats := range view.Overall {
		player, ok := players[id]
		if !ok {
			continue
		}
		merge.UpdatePlayerRecord(player, stats, view.Splits[id], statType, view.ByLevel[id])
		merge.InjectPerGameStats(player, statType, view.PerGame[id])
		updated++
	}
	if updated == 0 && len(view.Overall) > 0 {
		fmt.Fprintf(os.Stderr, "  [warn] no %s records matched the stats file; run the stats fetcher first\n", statType)
	}
	return updated
}
