// Package aggregator walks a collection of games and produces per-player
// advanced stats in four parallel views: overall, by opponent handedness,
// by competition level, and by individual game.
package aggregator

import (
	"strconv"

	"github.com/prospectlab/milbstats/internal/accum"
	"github.com/prospectlab/milbstats/internal/classify"
	"github.com/prospectlab/milbstats/internal/model"
)

// Config carries every threshold the pipeline uses. Call sites never
// hardcode minima; tests exercise boundaries by passing their own values.
type Config struct {
	Gates        accum.Gates
	PerGameGates accum.Gates
	PullBand     classify.PullBand
}

// DefaultConfig returns the standard monthly/seasonal configuration.
func DefaultConfig() Config {
	return Config{
		Gates:        accum.DefaultGates(),
		PerGameGates: accum.PerGameGates(),
		PullBand:     classify.DefaultPullBand(),
	}
}

// View holds one role's computed stats, keyed by player id.
type View struct {
	Overall map[string]model.RateStats
	Splits  map[string]map[string]model.RateStats // player → vsL/vsR
	ByLevel map[string]map[string]model.RateStats // player → level
	PerGame map[string]map[string]model.RateStats // player → game id
	Names   map[string]string
}

// Result is the output of one aggregation pass.
type Result struct {
	Batting  View
	Pitching View
}

// playerAccums holds the three independent accumulator scopes for one
// player. Each scope receives the same at-bats; none shares state.
type playerAccums struct {
	name    string
	overall accum.Accumulator
	byLevel map[string]*accum.Accumulator
	byGame  map[string]*accum.Accumulator
}

func newPlayerAccums() *playerAccums {
	return &playerAccums{
		byLevel: make(map[string]*accum.Accumulator),
		byGame:  make(map[string]*accum.Accumulator),
	}
}

func (p *playerAccums) add(ab *model.AtBat, opponentHand, batterHand model.Hand, level, gameID string, band classify.PullBand) {
	p.overall.AddAtBat(ab, opponentHand, batterHand, band)

	la := p.byLevel[level]
	if la == nil {
		la = &accum.Accumulator{}
		p.byLevel[level] = la
	}
	la.AddAtBat(ab, opponentHand, batterHand, band)

	ga := p.byGame[gameID]
	if ga == nil {
		ga = &accum.Accumulator{}
		p.byGame[gameID] = ga
	}
	ga.AddAtBat(ab, opponentHand, batterHand, band)
}

// Aggregate visits every at-bat of every game exactly once and computes
// all views for batters and pitchers. Pitcher splits are indexed by the
// batter's hand, and pitchers never get pull stats (no batter hand is
// forwarded). Pure summation: the result is independent of game order.
func Aggregate(games []model.Game, cfg Config) Result {
	batters := make(map[string]*playerAccums)
	pitchers := make(map[string]*playerAccums)

	for gi := range games {
		g := &games[gi]
		level := g.Level
		if level == "" {
			level = model.DefaultLevel
		}
		gameID := strconv.Itoa(g.GamePk)

		for ai := range g.AtBats {
			ab := &g.AtBats[ai]

			if ab.BatterID != 0 {
				id := strconv.Itoa(ab.BatterID)
				p := batters[id]
				if p == nil {
					p = newPlayerAccums()
					batters[id] = p
				}
				if p.name == "" {
					p.name = ab.BatterName
				}
				p.add(ab, ab.PitcherHand, ab.BatterHand, level, gameID, cfg.PullBand)
			}

			if ab.PitcherID != 0 {
				id := strconv.Itoa(ab.PitcherID)
				p := pitchers[id]
				if p == nil {
					p = newPlayerAccums()
					pitchers[id] = p
				}
				if p.name == "" {
					p.name = ab.PitcherName
				}
				p.add(ab, ab.BatterHand, model.HandUnknown, level, gameID, cfg.PullBand)
			}
		}
	}

	return Result{
		Batting:  buildView(batters, true, cfg),
		Pitching: buildView(pitchers, false, cfg),
	}
}

// buildView snapshots every accumulator into rate stats. Per-game
// snapshots use the relaxed per-game gates.
func buildView(players map[string]*playerAccums, isBatter bool, cfg Config) View {
	v := View{
		Overall: make(map[string]model.RateStats, len(players)),
		Splits:  make(map[string]map[string]model.RateStats, len(players)),
		ByLevel: make(map[string]map[string]model.RateStats, len(players)),
		PerGame: make(map[string]map[string]model.RateStats, len(players)),
		Names:   make(map[string]string, len(players)),
	}

	for id, p := range players {
		v.Overall[id] = p.overall.Snapshot(isBatter, cfg.Gates)
		v.Splits[id] = p.overall.SplitSnapshot(isBatter, cfg.Gates)
		v.Names[id] = p.name

		levels := make(map[string]model.RateStats, len(p.byLevel))
		for level, a := range p.byLevel {
			levels[level] = a.Snapshot(isBatter, cfg.Gates)
		}
		v.ByLevel[id] = levels

		games := make(map[string]model.RateStats, len(p.byGame))
		for gameID, a := range p.byGame {
			games[gameID] = a.Snapshot(isBatter, cfg.PerGameGates)
		}
		v.PerGame[id] = games
	}

	return v
}
