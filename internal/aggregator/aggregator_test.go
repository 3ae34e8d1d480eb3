package aggregator

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/prospectlab/milbstats/internal/model"
)

const (
	batterA  = 101
	batterB  = 102
	pitcherX = 201
	pitcherY = 202
)

// atBat builds a matchup between the given batter and pitcher.
func atBat(batterID int, batterHand model.Hand, pitcherID int, pitcherHand model.Hand, eventType, result string) model.AtBat {
	return model.AtBat{
		BatterID:    batterID,
		BatterHand:  batterHand,
		PitcherID:   pitcherID,
		PitcherHand: pitcherHand,
		EventType:   eventType,
		Result:      result,
		PitchCount:  4,
		Balls:       1,
		Strikes:     2,
	}
}

func sampleGames() []model.Game {
	return []model.Game{
		{
			GamePk: 1001,
			Date:   "2025-06-01",
			Level:  "AA",
			AtBats: []model.AtBat{
				atBat(batterA, model.HandRight, pitcherX, model.HandLeft, "field_out", "Groundout"),
				atBat(batterA, model.HandRight, pitcherY, model.HandRight, "field_out", "Flyout"),
				atBat(batterB, model.HandLeft, pitcherX, model.HandLeft, "strikeout", "Strikeout"),
			},
		},
		{
			GamePk: 1002,
			Date:   "2025-06-02",
			Level:  "AAA",
			AtBats: []model.AtBat{
				atBat(batterA, model.HandRight, pitcherY, model.HandRight, "home_run", "Home Run"),
				atBat(batterB, model.HandLeft, pitcherY, model.HandRight, "field_out", "Lineout"),
			},
		},
		{
			GamePk: 1003,
			Date:   "2025-06-03",
			// No level: defaults to MiLB.
			AtBats: []model.AtBat{
				atBat(batterA, model.HandRight, pitcherX, model.HandLeft, "field_out", "Groundout"),
			},
		},
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	games := sampleGames()
	want := Aggregate(games, DefaultConfig())

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]model.Game, len(games))
		copy(shuffled, games)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Aggregate(shuffled, DefaultConfig())
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: result differs after shuffling games", trial)
		}
	}
}

func TestAggregateViewsAreIndependent(t *testing.T) {
	res := Aggregate(sampleGames(), DefaultConfig())

	// Batter A: 4 at-bats overall, spread over three games and levels.
	id := "101"
	if got := res.Batting.Overall[id][model.StatBIP]; got != 4 {
		t.Errorf("overall BIP = %v, want 4", got)
	}

	levels := res.Batting.ByLevel[id]
	if len(levels) != 3 {
		t.Fatalf("ByLevel has %d levels, want 3 (%v)", len(levels), levels)
	}
	var levelSum float64
	for _, stats := range levels {
		levelSum += stats[model.StatBIP]
	}
	if levelSum != 4 {
		t.Errorf("sum of per-level BIP = %v, want 4 (no double counting)", levelSum)
	}

	games := res.Batting.PerGame[id]
	if len(games) != 3 {
		t.Fatalf("PerGame has %d games, want 3", len(games))
	}
	var gameSum float64
	for _, stats := range games {
		gameSum += stats[model.StatBIP]
	}
	if gameSum != 4 {
		t.Errorf("sum of per-game BIP = %v, want 4", gameSum)
	}
}

func TestAggregateDefaultLevel(t *testing.T) {
	res := Aggregate(sampleGames(), DefaultConfig())
	if _, ok := res.Batting.ByLevel["101"][model.DefaultLevel]; !ok {
		t.Errorf("game without level not aggregated under %q", model.DefaultLevel)
	}
}

func TestAggregatePerGameUsesRelaxedGates(t *testing.T) {
	res := Aggregate(sampleGames(), DefaultConfig())

	// One classifiable BIP in game 1003 is far below the seasonal gate of
	// 10, but per-game output publishes it.
	stats, ok := res.Batting.PerGame["101"]["1003"]
	if !ok {
		t.Fatal("no per-game stats for game 1003")
	}
	if got := stats[model.StatGB]; got != 1.0 {
		t.Errorf("per-game GB%% = %v, want 1.0", got)
	}

	// The overall view keeps the seasonal gate.
	if _, ok := res.Batting.Overall["101"][model.StatGB]; ok {
		t.Error("overall GB% emitted below the seasonal gate")
	}
}

func TestAggregateBatterSplitsByPitcherHand(t *testing.T) {
	res := Aggregate(sampleGames(), DefaultConfig())

	splits := res.Batting.Splits["101"]
	vsL, ok := splits[model.SplitVsLeft]
	if !ok {
		t.Fatal("batter A has no vsL split")
	}
	vsR, ok := splits[model.SplitVsRight]
	if !ok {
		t.Fatal("batter A has no vsR split")
	}
	// 2 at-bats against the lefty, 2 against the righty.
	if vsL[model.StatBIP] != 2 || vsR[model.StatBIP] != 2 {
		t.Errorf("split BIP = %v/%v, want 2/2", vsL[model.StatBIP], vsR[model.StatBIP])
	}
}

func TestAggregatePitcherSplitsByBatterHand(t *testing.T) {
	res := Aggregate(sampleGames(), DefaultConfig())

	// Pitcher X faced batter A (R) twice and batter B (L) once.
	splits := res.Pitching.Splits["201"]
	if got := splits[model.SplitVsRight][model.StatBIP]; got != 2 {
		t.Errorf("pitcher vsR BIP = %v, want 2", got)
	}
	vsL, ok := splits[model.SplitVsLeft]
	if !ok {
		t.Fatal("pitcher X has no vsL split")
	}
	if got := vsL[model.StatBIP]; got != 0 {
		t.Errorf("pitcher vsL BIP = %v, want 0 (strikeout only)", got)
	}
}

func TestAggregatePitchersGetNoPullStats(t *testing.T) {
	x := 160.0
	games := []model.Game{{
		GamePk: 2001,
		Level:  "AAA",
		AtBats: func() []model.AtBat {
			var abs []model.AtBat
			for i := 0; i < 15; i++ {
				abs = append(abs, model.AtBat{
					BatterID:    batterA,
					BatterHand:  model.HandRight,
					PitcherID:   pitcherX,
					PitcherHand: model.HandLeft,
					EventType:   "single",
					Result:      "Single",
					Pitches:     []model.Pitch{{Call: "D", Trajectory: "fly_ball", CoordX: &x}},
				})
			}
			return abs
		}(),
	}}

	res := Aggregate(games, DefaultConfig())

	if _, ok := res.Batting.Overall["101"][model.StatPull]; !ok {
		t.Error("batter Pull% missing despite 15 direction-known BIP")
	}
	if _, ok := res.Pitching.Overall["201"][model.StatPull]; ok {
		t.Error("pitcher received Pull%")
	}
}

func TestAggregateSkipsZeroIDs(t *testing.T) {
	games := []model.Game{{
		GamePk: 3001,
		AtBats: []model.AtBat{
			{BatterID: 0, PitcherID: pitcherX, EventType: "field_out", Result: "Flyout"},
			{BatterID: batterA, PitcherID: 0, EventType: "field_out", Result: "Flyout"},
		},
	}}
	res := Aggregate(games, DefaultConfig())

	if len(res.Batting.Overall) != 1 {
		t.Errorf("batting players = %d, want 1", len(res.Batting.Overall))
	}
	if len(res.Pitching.Overall) != 1 {
		t.Errorf("pitching players = %d, want 1", len(res.Pitching.Overall))
	}
}

func TestAggregateCollectsNames(t *testing.T) {
	games := sampleGames()
	games[0].AtBats[0].BatterName = "Jackson Chourio"
	res := Aggregate(games, DefaultConfig())
	if got := res.Batting.Names["101"]; got != "Jackson Chourio" {
		t.Errorf("name = %q, want %q", got, "Jackson Chourio")
	}
}
