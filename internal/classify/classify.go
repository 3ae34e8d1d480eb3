// Package classify holds the pure classification rules that turn one
// at-bat's raw fields into categorical outcomes: batted-ball type, pull
// direction, and per-pitch discipline flags.
package classify

import "github.com/prospectlab/milbstats/internal/model"

// Result labels that identify a batted-ball type for outs. Only outs can
// be classified from the label; a hit's label says nothing about trajectory.
var (
	groundBallResults = map[string]bool{
		"Groundout":           true,
		"Bunt Groundout":      true,
		"Grounded Into DP":    true,
		"Forceout":            true,
		"Fielders Choice":     true,
		"Fielders Choice Out": true,
		"Double Play":         true,
	}
	flyBallResults = map[string]bool{
		"Flyout":  true,
		"Pop Out": true,
		"Sac Fly": true,
	}
	lineDriveResults = map[string]bool{
		"Lineout": true,
	}
)

var (
	strikeoutEvents = map[string]bool{
		"strikeout":             true,
		"strikeout_double_play": true,
	}
	walkEvents = map[string]bool{
		"walk":         true,
		"intent_walk":  true,
		"hit_by_pitch": true,
	}
)

// IsStrikeout reports whether the event type is a strikeout outcome.
func IsStrikeout(eventType string) bool {
	return strikeoutEvents[eventType]
}

// IsWalk reports whether the event type is a walk or hit-by-pitch.
func IsWalk(eventType string) bool {
	return walkEvents[eventType]
}

// IsBallInPlay reports whether the at-bat put a ball in play: anything
// that is not a strikeout, walk, or HBP.
func IsBallInPlay(eventType string) bool {
	if eventType == "" {
		return false
	}
	return !strikeoutEvents[eventType] && !walkEvents[eventType]
}

// BattedBall classifies an at-bat's ball in play as GB, FB, or LD.
//
// Home runs are always fly balls, whatever else the record says. After
// that, per-pitch trajectory on the ball-in-play pitch is trusted over the
// result label. Hits without trajectory data and without a matching out
// label are not classifiable and return BattedBallNone; they are excluded
// from the batted-ball rates rather than guessed into a bucket.
func BattedBall(ab *model.AtBat) model.BattedBallType {
	if ab.EventType == "home_run" {
		return model.FlyBall
	}

	if fp := ab.FinalPitch(); fp != nil {
		switch fp.Trajectory {
		case "ground_ball":
			return model.GroundBall
		case "fly_ball", "popup":
			return model.FlyBall
		case "line_drive":
			return model.LineDrive
		}
	}

	switch {
	case groundBallResults[ab.Result]:
		return model.GroundBall
	case flyBallResults[ab.Result]:
		return model.FlyBall
	case lineDriveResults[ab.Result]:
		return model.LineDrive
	}
	return model.BattedBallNone
}

// Direction is the pull classification of a ball in play.
type Direction int

const (
	DirUnknown Direction = iota // up the middle, or hand/coordinate missing
	DirPull
	DirOppo
)

// PullBand is the horizontal coordinate band treated as "up the middle".
// Hit coordinates run 0–250 across the field with larger values toward the
// left-field line, so a right-handed pull lands beyond CenterRight and a
// left-handed pull below CenterLeft.
type PullBand struct {
	CenterLeft  float64
	CenterRight float64
}

// DefaultPullBand returns the standard center band around the 125.4
// midpoint of the coordinate axis.
func DefaultPullBand() PullBand {
	return PullBand{CenterLeft: 113.0, CenterRight: 138.0}
}

// Direction classifies a hit coordinate for the given batter hand.
// Coordinates inside the band are DirUnknown and stay out of the pull
// denominator entirely; switch hitters and unknown hands are never
// classified.
func (b PullBand) Direction(coordX float64, hand model.Hand) Direction {
	if coordX >= b.CenterLeft && coordX <= b.CenterRight {
		return DirUnknown
	}
	switch hand {
	case model.HandRight:
		if coordX > b.CenterRight {
			return DirPull
		}
		return DirOppo
	case model.HandLeft:
		if coordX < b.CenterLeft {
			return DirPull
		}
		return DirOppo
	}
	return DirUnknown
}

// PitchFlags says how one pitch call code counts toward discipline stats.
type PitchFlags struct {
	IsPitch   bool
	IsBall    bool
	IsStrike  bool
	IsSwing   bool
	IsContact bool
	IsCSW     bool
}

// CallFlags maps a pitch call code to its discipline flags.
//
// The taxonomy follows the Stats API call vocabulary: balls (B/I/P/V),
// called strikes (C), swinging strikes (S/M/W/Q), fouls (F/T/L/O/R),
// balls in play (X/D/E), and hit-by-pitch (H). Unknown codes return the
// zero value and are not counted as pitches at all.
func CallFlags(code string) PitchFlags {
	switch code {
	case "B", "I", "P", "V":
		return PitchFlags{IsPitch: true, IsBall: true}
	case "C":
		return PitchFlags{IsPitch: true, IsStrike: true, IsCSW: true}
	case "S", "M", "W", "Q":
		return PitchFlags{IsPitch: true, IsStrike: true, IsSwing: true, IsCSW: true}
	case "F", "T", "L", "O", "R":
		return PitchFlags{IsPitch: true, IsStrike: true, IsSwing: true, IsContact: true}
	case "X", "D", "E":
		return PitchFlags{IsPitch: true, IsSwing: true, IsContact: true}
	case "H":
		return PitchFlags{IsPitch: true}
	}
	return PitchFlags{}
}
