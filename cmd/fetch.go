package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/mlb"
	"github.com/prospectlab/milbstats/internal/model"
	"github.com/prospectlab/milbstats/internal/pbpstore"
)

// fetch command flags.
var (
	fetchDate      string
	fetchMonth     string
	fetchYear      int
	fetchYesterday bool
	fetchWorkers   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch MiLB play-by-play data from the MLB Stats API",
	Long: `Fetches play-by-play data for completed MiLB games across all levels
(AAA, AA, A+, A, CPX) and stores it by date under data/pbp/.

Examples:
  # Nightly run
  milbstats fetch --yesterday

  # One date
  milbstats fetch --date 2025-06-15

  # A whole month
  milbstats fetch --month 2025-06 --workers 50`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDate, "date", "", "fetch a specific date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchMonth, "month", "", "fetch a whole month (YYYY-MM)")
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "fetch a full season (April-September)")
	fetchCmd.Flags().BoolVar(&fetchYesterday, "yesterday", false, "fetch yesterday's games")
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 0, "parallel game fetches (default from config)")
	fetchCmd.MarkFlagsOneRequired("date", "month", "year", "yesterday")
	fetchCmd.MarkFlagsMutuallyExclusive("date", "month", "year", "yesterday")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	workers := fetchWorkers
	if workers <= 0 {
		workers = cfg.Fetch.Workers
	}
	if workers <= 0 {
		workers = 20
	}

	var dates []string
	years := make(map[int]bool)

	switch {
	case fetchDate != "":
		date, err := parseDate(fetchDate)
		if err != nil {
			return err
		}
		dates = []string{date}
	case fetchYesterday:
		dates = []string{yesterdayDate()}
	case fetchMonth != "":
		year, month, err := parseMonth(fetchMonth)
		if err != nil {
			return err
		}
		dates = monthDates(year, month)
	case fetchYear != 0:
		for _, month := range seasonMonths {
			dates = append(dates, monthDates(fetchYear, month)...)
		}
	}

	store := pbpstore.New(dataDir)
	client := mlb.NewClient()

	for _, date := range dates {
		if err := fetchOneDate(client, store, date, workers); err != nil {
			return err
		}
		year, _, _ := parseMonth(date[:7])
		years[year] = true
	}

	for year := range years {
		if err := store.UpdateManifest(year); err != nil {
			return fmt.Errorf("update manifest for %d: %w", year, err)
		}
	}
	return nil
}

// fetchOneDate pulls the schedule for one date and fetches each completed
// game's play-by-play with a bounded worker pool.
func fetchOneDate(client *mlb.Client, store *pbpstore.Store, date string, workers int) error {
	games, err := client.FinalGames(date)
	if err != nil {
		return fmt.Errorf("schedule for %s: %w", date, err)
	}
	fmt.Printf("%s: %d completed games\n", date, len(games))

	records := make([]*model.Game, len(games))
	failed := 0

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, workers)

	for i := range games {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			g := &games[i]
			pbp, err := client.PlayByPlay(g.GamePk)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "  [skip] game %d: %v\n", g.GamePk, err)
				return
			}
			records[i] = mlb.ExtractGame(g, pbp)
		}(i)
	}
	wg.Wait()

	// Keep schedule order; games with no extractable at-bats are dropped
	// here so the aggregation stage only ever sees complete records.
	kept := make([]model.Game, 0, len(records))
	for _, r := range records {
		if r != nil {
			kept = append(kept, *r)
		}
	}

	df := &model.DayFile{
		Date:      date,
		Updated:   time.Now().Format(time.RFC3339),
		GameCount: len(kept),
		Games:     kept,
	}
	if err := store.WriteDay(date, df); err != nil {
		return err
	}
	fmt.Printf("  stored %d games (%d failed)\n", len(kept), failed)
	return nil
}
