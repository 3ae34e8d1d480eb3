package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/config"
)

var (
	dataDir string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "milbstats",
	Short: "MiLB advanced stats tool",
	Long:  "Fetch MiLB play-by-play data and compute advanced per-player metrics: batted-ball profile, pull tendency, plate discipline, and CSW%, with handedness, level, and per-game breakdowns.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultData := filepath.Join(mustUserHome(), ".milbstats", "data")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultData, "path to data directory")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// loadConfig returns the file config when --config is set, defaults otherwise.
func loadConfig() (config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// registryPath is the SQLite player index location inside the data dir.
func registryPath() string {
	return filepath.Join(dataDir, "players.db")
}
