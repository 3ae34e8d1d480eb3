// Package accum turns a stream of at-bats into raw counters and gated rate
// statistics, with one level of opponent-handedness splits.
package accum

import (
	"math"

	"github.com/prospectlab/milbstats/internal/classify"
	"github.com/prospectlab/milbstats/internal/model"
)

// Gates are the minimum sample sizes below which a stat family is omitted
// from the output rather than published on noise.
type Gates struct {
	MinBIP       int
	MinPitches   int
	MinDirection int
}

// DefaultGates are the monthly/seasonal minima.
func DefaultGates() Gates {
	return Gates{MinBIP: 10, MinPitches: 50, MinDirection: 10}
}

// PerGameGates relax every minimum to 1. Rolling-window consumers of
// per-game stats handle small-sample noise themselves.
func PerGameGates() Gates {
	return Gates{MinBIP: 1, MinPitches: 1, MinDirection: 1}
}

// Totals is a flat bag of raw counts for one player in one aggregation
// scope. It never owns splits; splits are carried by Accumulator, exactly
// one level deep.
type Totals struct {
	// Batted-ball counts over the classifiable subset of balls in play.
	GroundBalls int
	FlyBalls    int
	LineDrives  int
	HomeRuns    int // subset of FlyBalls

	// Pull direction, over balls in play with a known hand and a
	// coordinate outside the center band.
	DirectionBIP    int
	Pulled          int
	AirDirectionBIP int // FB/LD subset
	PulledAir       int

	// Plate discipline.
	Pitches             int
	Swings              int
	Contacts            int
	CalledStrikesWhiffs int

	// HasPitchData is set once any at-bat contributes a real per-pitch
	// call log. Counts derived from legacy aggregate counters are
	// approximations and never set it.
	HasPitchData bool

	AtBats int
}

// Add ingests one at-bat. batterHand enables pull tracking when it names a
// definite side; pass model.HandUnknown to disable it (pitcher views).
// The at-bat itself is never mutated.
func (t *Totals) Add(ab *model.AtBat, batterHand model.Hand, band classify.PullBand) {
	t.AtBats++

	bb := classify.BattedBall(ab)
	switch bb {
	case model.GroundBall:
		t.GroundBalls++
	case model.FlyBall:
		t.FlyBalls++
		if ab.EventType == "home_run" {
			t.HomeRuns++
		}
	case model.LineDrive:
		t.LineDrives++
	}

	if batterHand.Known() && classify.IsBallInPlay(ab.EventType) {
		if fp := ab.FinalPitch(); fp != nil && fp.CoordX != nil {
			dir := band.Direction(*fp.CoordX, batterHand)
			if dir != classify.DirUnknown {
				t.DirectionBIP++
				air := bb == model.FlyBall || bb == model.LineDrive
				if air {
					t.AirDirectionBIP++
				}
				if dir == classify.DirPull {
					t.Pulled++
					if air {
						t.PulledAir++
					}
				}
			}
		}
	}

	switch d := ab.Detail().(type) {
	case model.PitchLog:
		t.addPitchLog(d)
	case model.PitchTotals:
		t.addLegacy(ab.EventType, d)
	}
}

// addPitchLog tallies real per-pitch call codes. Unknown codes are
// skipped entirely, not even counted as pitches.
func (t *Totals) addPitchLog(log model.PitchLog) {
	t.HasPitchData = true
	for i := range log.Pitches {
		f := classify.CallFlags(log.Pitches[i].Call)
		if !f.IsPitch {
			continue
		}
		t.Pitches++
		if f.IsSwing {
			t.Swings++
		}
		if f.IsContact {
			t.Contacts++
		}
		if f.IsCSW {
			t.CalledStrikesWhiffs++
		}
	}
}

// addLegacy estimates discipline counts from at-bat-level counters.
// Every non-ball pitch is treated as a potential swing; contacts and CSW
// are reconstructed from the strike count and the at-bat outcome. The
// estimates are deliberately conservative and HasPitchData stays false.
func (t *Totals) addLegacy(eventType string, d model.PitchTotals) {
	t.Pitches += d.Pitches
	t.Swings += d.Pitches - d.Balls

	if classify.IsStrikeout(eventType) {
		// Strike three was a whiff or called; earlier strikes beyond
		// the first two must have been fouls.
		t.Contacts += max(0, d.Strikes-3)
		t.CalledStrikesWhiffs += 3
		return
	}

	// Contact on the final swing, plus prior strikes estimated as fouls.
	priorFouls := max(0, d.Strikes-1)
	t.Contacts += 1 + priorFouls

	if classify.IsWalk(eventType) {
		t.CalledStrikesWhiffs += d.Strikes
		return
	}
	t.CalledStrikesWhiffs += max(0, d.Strikes-priorFouls-1)
}

// ClassifiableBIP is the batted-ball sample size: balls in play that got a
// GB/FB/LD classification.
func (t *Totals) ClassifiableBIP() int {
	return t.GroundBalls + t.FlyBalls + t.LineDrives
}

// Rates converts raw counts into the published rate stats, applying the
// given gates. The classifiable-BIP count is always emitted, even below
// the gate, so periods can be weighted when combined downstream. Pull
// stats are batter-only.
func (t *Totals) Rates(isBatter bool, g Gates) model.RateStats {
	stats := model.RateStats{}

	bip := t.ClassifiableBIP()
	stats[model.StatBIP] = float64(bip)

	if bip > 0 && bip >= g.MinBIP {
		stats[model.StatGB] = round3(float64(t.GroundBalls) / float64(bip))
		stats[model.StatFB] = round3(float64(t.FlyBalls) / float64(bip))
		stats[model.StatLD] = round3(float64(t.LineDrives) / float64(bip))
		if t.FlyBalls > 0 {
			stats[model.StatHRFB] = round3(float64(t.HomeRuns) / float64(t.FlyBalls))
		}
	}

	if isBatter {
		if t.DirectionBIP > 0 && t.DirectionBIP >= g.MinDirection {
			stats[model.StatPull] = round3(float64(t.Pulled) / float64(t.DirectionBIP))
		}
		if t.AirDirectionBIP > 0 && t.AirDirectionBIP >= g.MinDirection {
			stats[model.StatPullAir] = round3(float64(t.PulledAir) / float64(t.AirDirectionBIP))
		}
	}

	if t.HasPitchData && t.Pitches > 0 && t.Pitches >= g.MinPitches {
		if t.Swings > 0 {
			stats[model.StatSwing] = round3(float64(t.Swings) / float64(t.Pitches))
			stats[model.StatContact] = round3(float64(t.Contacts) / float64(t.Swings))
		}
		stats[model.StatCSW] = round3(float64(t.CalledStrikesWhiffs) / float64(t.Pitches))
	}

	return stats
}

// Accumulator is the per-player counter object: overall totals plus two
// child Totals for opponent-handedness splits. Children never have splits
// of their own.
type Accumulator struct {
	Totals
	VsLeft  Totals
	VsRight Totals
}

// AddAtBat is the single mutation entry point. opponentHand routes the
// at-bat into the matching split; switch or unknown opponents count only
// toward the overall totals.
func (a *Accumulator) AddAtBat(ab *model.AtBat, opponentHand, batterHand model.Hand, band classify.PullBand) {
	a.Totals.Add(ab, batterHand, band)
	switch opponentHand {
	case model.HandLeft:
		a.VsLeft.Add(ab, batterHand, band)
	case model.HandRight:
		a.VsRight.Add(ab, batterHand, band)
	}
}

// Snapshot produces the overall rate stats.
func (a *Accumulator) Snapshot(isBatter bool, g Gates) model.RateStats {
	return a.Totals.Rates(isBatter, g)
}

// SplitSnapshot produces the vsL/vsR rate stats, omitting a side that saw
// no at-bats.
func (a *Accumulator) SplitSnapshot(isBatter bool, g Gates) map[string]model.RateStats {
	splits := make(map[string]model.RateStats, 2)
	if a.VsLeft.AtBats > 0 {
		splits[model.SplitVsLeft] = a.VsLeft.Rates(isBatter, g)
	}
	if a.VsRight.AtBats > 0 {
		splits[model.SplitVsRight] = a.VsRight.Rates(isBatter, g)
	}
	return splits
}

// round3 rounds to 3 decimals, the precision every published rate uses.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
