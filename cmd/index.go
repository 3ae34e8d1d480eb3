package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/pbpstore"
	"github.com/prospectlab/milbstats/internal/registry"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the player search index from the monthly stats files",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	store := pbpstore.New(dataDir)

	months, err := store.StatsMonths()
	if err != nil {
		return fmt.Errorf("list stats months: %w", err)
	}
	if len(months) == 0 {
		return fmt.Errorf("no stats files under %s; nothing to index", dataDir)
	}

	// Months come back ascending, so later months overwrite earlier ones
	// and each player's entry reflects where they were seen last.
	entries := make(map[string]registry.Entry)
	for _, ref := range months {
		monthly, err := store.LoadMonthlyStats(ref.Year, ref.Month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  [warn] %v\n", err)
			continue
		}
		for id, record := range monthly.Players {
			e := registry.Entry{
				ID:        id,
				Name:      stringField(record, "name"),
				Type:      playerType(record),
				Team:      stringField(record, "team"),
				Level:     stringField(record, "level"),
				LastYear:  ref.Year,
				LastMonth: ref.Month,
			}
			if e.Name == "" {
				e.Name = id
			}
			entries[id] = e
		}
	}

	if err := os.MkdirAll(filepath.Dir(registryPath()), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := registry.Open(registryPath())
	if err != nil {
		return err
	}
	defer db.Close()

	batch := make([]registry.Entry, 0, len(entries))
	for _, e := range entries {
		batch = append(batch, e)
	}
	if err := db.Upsert(batch); err != nil {
		return fmt.Errorf("index players: %w", err)
	}

	fmt.Printf("Indexed %d players across %d months\n", len(batch), len(months))
	return nil
}

func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

// playerType inspects which stat families a record carries.
func playerType(record map[string]any) string {
	_, hasBatting := record["batting"]
	_, hasPitching := record["pitching"]
	switch {
	case hasBatting && hasPitching:
		return "two-way"
	case hasPitching:
		return "pitcher"
	default:
		return "batter"
	}
}
