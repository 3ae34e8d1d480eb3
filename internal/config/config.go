// Package config loads the optional YAML configuration file that controls
// sample-size gates, the pull-coordinate band, and fetch politeness.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prospectlab/milbstats/internal/accum"
	"github.com/prospectlab/milbstats/internal/aggregator"
	"github.com/prospectlab/milbstats/internal/classify"
)

// GatesConfig mirrors accum.Gates in the config file.
type GatesConfig struct {
	MinBIP       int `yaml:"minBip"`
	MinPitches   int `yaml:"minPitches"`
	MinDirection int `yaml:"minDirection"`
}

// PullBandConfig is the up-the-middle coordinate band.
type PullBandConfig struct {
	CenterLeft  float64 `yaml:"centerLeft"`
	CenterRight float64 `yaml:"centerRight"`
}

// FetchConfig controls the play-by-play fetcher.
type FetchConfig struct {
	Workers int `yaml:"workers"`
}

// Config is the full file.
type Config struct {
	Gates    GatesConfig    `yaml:"gates"`
	PerGame  GatesConfig    `yaml:"perGame"`
	PullBand PullBandConfig `yaml:"pullBand"`
	Fetch    FetchConfig    `yaml:"fetch"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := accum.DefaultGates()
	pg := accum.PerGameGates()
	band := classify.DefaultPullBand()
	return Config{
		Gates:    GatesConfig{MinBIP: g.MinBIP, MinPitches: g.MinPitches, MinDirection: g.MinDirection},
		PerGame:  GatesConfig{MinBIP: pg.MinBIP, MinPitches: pg.MinPitches, MinDirection: pg.MinDirection},
		PullBand: PullBandConfig{CenterLeft: band.CenterLeft, CenterRight: band.CenterRight},
		Fetch:    FetchConfig{Workers: 20},
	}
}

// Load reads a YAML config file over the defaults, so a partial file only
// overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Aggregator converts the file values into the pipeline configuration.
func (c Config) Aggregator() aggregator.Config {
	return aggregator.Config{
		Gates: accum.Gates{
			MinBIP:       c.Gates.MinBIP,
			MinPitches:   c.Gates.MinPitches,
			MinDirection: c.Gates.MinDirection,
		},
		PerGameGates: accum.Gates{
			MinBIP:       c.PerGame.MinBIP,
			MinPitches:   c.PerGame.MinPitches,
			MinDirection: c.PerGame.MinDirection,
		},
		PullBand: classify.PullBand{
			CenterLeft:  c.PullBand.CenterLeft,
			CenterRight: c.PullBand.CenterRight,
		},
	}
}
