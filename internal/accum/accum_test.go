package accum

import (
	"math"
	"testing"

	"github.com/prospectlab/milbstats/internal/classify"
	"github.com/prospectlab/milbstats/internal/model"
)

var band = classify.DefaultPullBand()

// groundout builds a classifiable GB at-bat with no pitch data.
func groundout() *model.AtBat {
	return &model.AtBat{EventType: "field_out", Result: "Groundout"}
}

func flyout() *model.AtBat {
	return &model.AtBat{EventType: "field_out", Result: "Flyout"}
}

func lineout() *model.AtBat {
	return &model.AtBat{EventType: "field_out", Result: "Lineout"}
}

func homeRun() *model.AtBat {
	return &model.AtBat{
		EventType: "home_run",
		Result:    "Home Run",
		Pitches:   []model.Pitch{{Call: "E", Trajectory: "fly_ball"}},
	}
}

// inPlayAt builds a ball in play whose final pitch landed at coordX.
func inPlayAt(coordX float64, trajectory string) *model.AtBat {
	x := coordX
	return &model.AtBat{
		EventType: "single",
		Result:    "Single",
		Pitches:   []model.Pitch{{Call: "D", Trajectory: trajectory, CoordX: &x}},
	}
}

func legacy(eventType string, pitchCount, balls, strikes int) *model.AtBat {
	return &model.AtBat{
		EventType:  eventType,
		PitchCount: pitchCount,
		Balls:      balls,
		Strikes:    strikes,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScenarioAllGroundBalls(t *testing.T) {
	var tot Totals
	for i := 0; i < 12; i++ {
		tot.Add(groundout(), model.HandUnknown, band)
	}

	stats := tot.Rates(true, DefaultGates())
	if got := stats[model.StatGB]; !approxEqual(got, 1.0) {
		t.Errorf("GB%% = %v, want 1.0", got)
	}
	if got := stats[model.StatFB]; !approxEqual(got, 0.0) {
		t.Errorf("FB%% = %v, want 0.0", got)
	}
	if _, ok := stats[model.StatHRFB]; ok {
		t.Error("HR/FB emitted with zero fly balls")
	}
	if got := stats[model.StatBIP]; !approxEqual(got, 12) {
		t.Errorf("BIP = %v, want 12", got)
	}
}

func TestScenarioHomeRunCountsAsFlyBall(t *testing.T) {
	var tot Totals
	tot.Add(homeRun(), model.HandUnknown, band)

	if tot.FlyBalls != 1 {
		t.Errorf("FlyBalls = %d, want 1", tot.FlyBalls)
	}
	if tot.HomeRuns != 1 {
		t.Errorf("HomeRuns = %d, want 1", tot.HomeRuns)
	}

	// With the gate at 1, HR/FB must come out as 1.0.
	stats := tot.Rates(true, PerGameGates())
	if got := stats[model.StatHRFB]; !approxEqual(got, 1.0) {
		t.Errorf("HR/FB = %v, want 1.0", got)
	}
}

func TestScenarioLegacySingle(t *testing.T) {
	var tot Totals
	tot.Add(legacy("single", 4, 1, 2), model.HandUnknown, band)

	if tot.Pitches != 4 {
		t.Errorf("Pitches = %d, want 4", tot.Pitches)
	}
	if tot.Swings != 3 {
		t.Errorf("Swings = %d, want 3", tot.Swings)
	}
	if tot.Contacts != 2 {
		t.Errorf("Contacts = %d, want 2", tot.Contacts)
	}
	if tot.CalledStrikesWhiffs != 0 {
		t.Errorf("CalledStrikesWhiffs = %d, want 0", tot.CalledStrikesWhiffs)
	}
	if tot.HasPitchData {
		t.Error("HasPitchData = true on the legacy path")
	}
}

func TestLegacyStrikeoutAndWalk(t *testing.T) {
	var tot Totals
	// Strikeout on 6 pitches: 3 CSW, fouls beyond strike two count as contact.
	tot.Add(legacy("strikeout", 6, 1, 5), model.HandUnknown, band)
	if tot.CalledStrikesWhiffs != 3 {
		t.Errorf("after strikeout: CSW = %d, want 3", tot.CalledStrikesWhiffs)
	}
	if tot.Contacts != 2 {
		t.Errorf("after strikeout: Contacts = %d, want 2", tot.Contacts)
	}

	// Walk with 2 strikes seen: both count as called strikes.
	tot.Add(legacy("walk", 6, 4, 2), model.HandUnknown, band)
	if tot.CalledStrikesWhiffs != 5 {
		t.Errorf("after walk: CSW = %d, want 5", tot.CalledStrikesWhiffs)
	}
}

func TestLegacyNeverSetsPitchData(t *testing.T) {
	var tot Totals
	for i := 0; i < 30; i++ {
		tot.Add(legacy("single", 4, 1, 2), model.HandUnknown, band)
	}
	if tot.Pitches < 50 {
		t.Fatalf("Pitches = %d, want >= 50", tot.Pitches)
	}

	// Plenty of pitches, but all estimated: discipline stats stay gated.
	stats := tot.Rates(true, DefaultGates())
	for _, key := range []string{model.StatSwing, model.StatContact, model.StatCSW} {
		if _, ok := stats[key]; ok {
			t.Errorf("%s emitted without pitch-level data", key)
		}
	}
}

func TestPitchLogTally(t *testing.T) {
	ab := &model.AtBat{
		EventType: "single",
		Pitches: []model.Pitch{
			{Call: "B"}, // ball
			{Call: "C"}, // called strike
			{Call: "S"}, // swinging strike
			{Call: "F"}, // foul
			{Call: "Z"}, // unknown: not counted at all
			{Call: "X"}, // in play
		},
	}
	var tot Totals
	tot.Add(ab, model.HandUnknown, band)

	if tot.Pitches != 5 {
		t.Errorf("Pitches = %d, want 5 (unknown code skipped)", tot.Pitches)
	}
	if tot.Swings != 3 {
		t.Errorf("Swings = %d, want 3", tot.Swings)
	}
	if tot.Contacts != 2 {
		t.Errorf("Contacts = %d, want 2", tot.Contacts)
	}
	if tot.CalledStrikesWhiffs != 2 {
		t.Errorf("CalledStrikesWhiffs = %d, want 2", tot.CalledStrikesWhiffs)
	}
	if !tot.HasPitchData {
		t.Error("HasPitchData = false with a pitch log")
	}
}

func TestScenarioPullByHand(t *testing.T) {
	// Coordinate beyond the right threshold: pulled for a RHB only.
	var rhb Totals
	rhb.Add(inPlayAt(160.0, "line_drive"), model.HandRight, band)
	if rhb.Pulled != 1 || rhb.DirectionBIP != 1 {
		t.Errorf("RHB: Pulled=%d DirectionBIP=%d, want 1/1", rhb.Pulled, rhb.DirectionBIP)
	}
	if rhb.PulledAir != 1 || rhb.AirDirectionBIP != 1 {
		t.Errorf("RHB: PulledAir=%d AirDirectionBIP=%d, want 1/1", rhb.PulledAir, rhb.AirDirectionBIP)
	}

	var lhb Totals
	lhb.Add(inPlayAt(160.0, "line_drive"), model.HandLeft, band)
	if lhb.Pulled != 0 {
		t.Errorf("LHB: Pulled=%d, want 0 (same coordinate is oppo)", lhb.Pulled)
	}
	if lhb.DirectionBIP != 1 {
		t.Errorf("LHB: DirectionBIP=%d, want 1", lhb.DirectionBIP)
	}
}

func TestPullGroundBallExcludedFromAir(t *testing.T) {
	var tot Totals
	tot.Add(inPlayAt(160.0, "ground_ball"), model.HandRight, band)
	if tot.DirectionBIP != 1 || tot.Pulled != 1 {
		t.Errorf("DirectionBIP=%d Pulled=%d, want 1/1", tot.DirectionBIP, tot.Pulled)
	}
	if tot.AirDirectionBIP != 0 || tot.PulledAir != 0 {
		t.Errorf("AirDirectionBIP=%d PulledAir=%d, want 0/0", tot.AirDirectionBIP, tot.PulledAir)
	}
}

func TestPullSkippedForStrikeoutsAndUnknownHands(t *testing.T) {
	x := 160.0
	k := &model.AtBat{
		EventType: "strikeout",
		Pitches:   []model.Pitch{{Call: "S", CoordX: &x}},
	}

	var tot Totals
	tot.Add(k, model.HandRight, band)                           // not a ball in play
	tot.Add(inPlayAt(160.0, "fly_ball"), model.HandSwitch, band) // switch hitter
	tot.Add(inPlayAt(160.0, "fly_ball"), model.HandUnknown, band)

	if tot.DirectionBIP != 0 {
		t.Errorf("DirectionBIP = %d, want 0", tot.DirectionBIP)
	}
}

func TestGatingBoundary(t *testing.T) {
	g := DefaultGates()

	build := func(n int) Totals {
		var tot Totals
		for i := 0; i < n; i++ {
			switch i % 3 {
			case 0:
				tot.Add(groundout(), model.HandUnknown, band)
			case 1:
				tot.Add(flyout(), model.HandUnknown, band)
			default:
				tot.Add(lineout(), model.HandUnknown, band)
			}
		}
		return tot
	}

	under := build(g.MinBIP - 1)
	stats := under.Rates(true, g)
	for _, key := range []string{model.StatGB, model.StatFB, model.StatLD} {
		if _, ok := stats[key]; ok {
			t.Errorf("%s emitted with BIP below the gate", key)
		}
	}
	if got := stats[model.StatBIP]; !approxEqual(got, float64(g.MinBIP-1)) {
		t.Errorf("BIP = %v, want %d (always emitted)", got, g.MinBIP-1)
	}

	at := build(g.MinBIP)
	stats = at.Rates(true, g)
	sum := stats[model.StatGB] + stats[model.StatFB] + stats[model.StatLD]
	if math.Abs(sum-1.0) > 0.002 {
		t.Errorf("GB%%+FB%%+LD%% = %v, want 1.0 within rounding", sum)
	}
}

func TestHomeRunsNeverExceedFlyBalls(t *testing.T) {
	var tot Totals
	for i := 0; i < 4; i++ {
		tot.Add(homeRun(), model.HandUnknown, band)
	}
	tot.Add(flyout(), model.HandUnknown, band)
	if tot.HomeRuns > tot.FlyBalls {
		t.Errorf("HomeRuns %d > FlyBalls %d", tot.HomeRuns, tot.FlyBalls)
	}
}

func TestPitcherViewGetsNoPullStats(t *testing.T) {
	var tot Totals
	for i := 0; i < 15; i++ {
		tot.Add(inPlayAt(160.0, "fly_ball"), model.HandRight, band)
	}
	stats := tot.Rates(false, DefaultGates())
	if _, ok := stats[model.StatPull]; ok {
		t.Error("Pull% emitted for a pitcher view")
	}
	if _, ok := stats[model.StatPullAir]; ok {
		t.Error("Pull-Air% emitted for a pitcher view")
	}
}

func TestContactRequiresSwings(t *testing.T) {
	// 60 pitches, all taken balls: Swing% and Contact% need swings > 0.
	var tot Totals
	pitches := make([]model.Pitch, 60)
	for i := range pitches {
		pitches[i].Call = "B"
	}
	tot.Add(&model.AtBat{EventType: "walk", Pitches: pitches}, model.HandUnknown, band)

	stats := tot.Rates(true, DefaultGates())
	if _, ok := stats[model.StatSwing]; ok {
		t.Error("Swing% emitted with zero swings")
	}
	if _, ok := stats[model.StatContact]; ok {
		t.Error("Contact% emitted with zero swings")
	}
	if got := stats[model.StatCSW]; !approxEqual(got, 0.0) {
		t.Errorf("CSW%% = %v, want 0.0", got)
	}
}

func TestSplitAdditivity(t *testing.T) {
	var a Accumulator
	a.AddAtBat(groundout(), model.HandLeft, model.HandUnknown, band)
	a.AddAtBat(groundout(), model.HandLeft, model.HandUnknown, band)
	a.AddAtBat(flyout(), model.HandRight, model.HandUnknown, band)
	a.AddAtBat(lineout(), model.HandSwitch, model.HandUnknown, band) // excluded from splits
	a.AddAtBat(lineout(), model.HandUnknown, model.HandUnknown, band)

	if a.Totals.AtBats != 5 {
		t.Errorf("overall AtBats = %d, want 5", a.Totals.AtBats)
	}
	if a.VsLeft.AtBats != 2 {
		t.Errorf("VsLeft.AtBats = %d, want 2", a.VsLeft.AtBats)
	}
	if a.VsRight.AtBats != 1 {
		t.Errorf("VsRight.AtBats = %d, want 1", a.VsRight.AtBats)
	}
	if got := a.VsLeft.AtBats + a.VsRight.AtBats; got != 3 {
		t.Errorf("split at-bats = %d, want 3 (only known hands)", got)
	}

	splits := a.SplitSnapshot(true, PerGameGates())
	if _, ok := splits[model.SplitVsLeft]; !ok {
		t.Error("vsL missing from split snapshot")
	}
	if _, ok := splits[model.SplitVsRight]; !ok {
		t.Error("vsR missing from split snapshot")
	}
}

func TestSplitSnapshotOmitsEmptySide(t *testing.T) {
	var a Accumulator
	a.AddAtBat(groundout(), model.HandLeft, model.HandUnknown, band)

	splits := a.SplitSnapshot(true, PerGameGates())
	if _, ok := splits[model.SplitVsRight]; ok {
		t.Error("vsR emitted with no at-bats against right-handers")
	}
}

func TestAddDoesNotMutateAtBat(t *testing.T) {
	ab := inPlayAt(160.0, "fly_ball")
	want := *ab

	var tot Totals
	tot.Add(ab, model.HandRight, band)

	if ab.EventType != want.EventType || ab.PitchCount != want.PitchCount ||
		len(ab.Pitches) != len(want.Pitches) {
		t.Error("Add mutated the input at-bat")
	}
}
