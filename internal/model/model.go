// Package model defines the play-by-play data shapes the pipeline consumes
// and the stat maps it produces.
package model

// Hand is a batter or pitcher handedness code as reported by the MLB Stats API.
type Hand string

const (
	HandLeft    Hand = "L"
	HandRight   Hand = "R"
	HandSwitch  Hand = "S"
	HandUnknown Hand = ""
)

// Known returns true for a definite single-side hand (L or R).
func (h Hand) Known() bool {
	return h == HandLeft || h == HandRight
}

// BattedBallType classifies the trajectory of a ball in play.
type BattedBallType int

const (
	BattedBallNone BattedBallType = iota // not classifiable
	GroundBall
	FlyBall
	LineDrive
)

func (t BattedBallType) String() string {
	switch t {
	case GroundBall:
		return "GB"
	case FlyBall:
		return "FB"
	case LineDrive:
		return "LD"
	default:
		return "?"
	}
}

// ---- Raw play-by-play records ----

// Pitch is one pitch within an at-bat. Trajectory and CoordX are only
// populated on the ball-in-play pitch (the final pitch of the at-bat).
type Pitch struct {
	Call       string   `json:"call"`
	Trajectory string   `json:"trajectory,omitempty"`
	CoordX     *float64 `json:"coordX,omitempty"`
}

// AtBat is one plate appearance. Pitch data comes in one of two shapes:
// a per-pitch call log (Pitches) or legacy aggregate counters
// (PitchCount/Balls/Strikes). Detail resolves which one applies.
type AtBat struct {
	BatterID    int    `json:"batterId"`
	BatterName  string `json:"batterName,omitempty"`
	BatterHand  Hand   `json:"batterHand,omitempty"`
	PitcherID   int    `json:"pitcherId"`
	PitcherName string `json:"pitcherName,omitempty"`
	PitcherHand Hand   `json:"pitcherHand,omitempty"`

	Result      string `json:"result,omitempty"`
	EventType   string `json:"eventType,omitempty"`
	Description string `json:"description,omitempty"`
	RBI         int    `json:"rbi,omitempty"`
	IsOut       bool   `json:"isOut,omitempty"`

	Pitches    []Pitch `json:"pitches,omitempty"`
	PitchCount int     `json:"pitchCount,omitempty"`
	Balls      int     `json:"balls,omitempty"`
	Strikes    int     `json:"strikes,omitempty"`
}

// PitchDetail is the resolved pitch-data variant of an at-bat: either a
// per-pitch call log (PitchLog) or legacy aggregate counters (PitchTotals).
type PitchDetail interface {
	pitchDetail()
}

// PitchLog carries real per-pitch call codes.
type PitchLog struct {
	Pitches []Pitch
}

// PitchTotals carries only at-bat-level counters from older records.
// Discipline counts derived from it are approximations.
type PitchTotals struct {
	Pitches int
	Balls   int
	Strikes int
}

func (PitchLog) pitchDetail()    {}
func (PitchTotals) pitchDetail() {}

// Detail resolves the pitch-data shape of the at-bat once. A per-pitch log
// wins over the aggregate counters; nil means no usable pitch data.
func (ab *AtBat) Detail() PitchDetail {
	if len(ab.Pitches) > 0 {
		return PitchLog{Pitches: ab.Pitches}
	}
	if ab.PitchCount > 0 {
		return PitchTotals{Pitches: ab.PitchCount, Balls: ab.Balls, Strikes: ab.Strikes}
	}
	return nil
}

// FinalPitch returns the last pitch of the at-bat (the only one that can
// carry trajectory and hit-coordinate data), or nil without a pitch log.
func (ab *AtBat) FinalPitch() *Pitch {
	if len(ab.Pitches) == 0 {
		return nil
	}
	return &ab.Pitches[len(ab.Pitches)-1]
}

// Team identifies one side of a game.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is one completed game's play-by-play record.
type Game struct {
	GamePk   int     `json:"gamePk"`
	Date     string  `json:"date"`
	Level    string  `json:"level"`
	AwayTeam Team    `json:"awayTeam"`
	HomeTeam Team    `json:"homeTeam"`
	AtBats   []AtBat `json:"atBats"`
}

// DayFile holds all games fetched for a single date.
type DayFile struct {
	Date      string `json:"date"`
	Updated   string `json:"updated"`
	GameCount int    `json:"gameCount"`
	Games     []Game `json:"games"`
}

// Manifest records which days of a year have play-by-play data on disk.
type Manifest struct {
	Year    int           `json:"year"`
	Updated string        `json:"updated"`
	Months  map[int][]int `json:"months"`
}

// MonthlyStats is one month's stats file. Player records are kept as
// decoded JSON maps so keys owned by the stats fetcher round-trip intact.
type MonthlyStats struct {
	Year    int                       `json:"year"`
	Month   int                       `json:"month"`
	Updated string                    `json:"updated"`
	Players map[string]map[string]any `json:"players"`
}

// ---- Computed output ----

// RateStats maps a published stat name to its value. Never mutated after
// it is produced by the rate calculator.
type RateStats map[string]float64

// Published advanced-stat keys.
const (
	StatGB      = "GB%"
	StatFB      = "FB%"
	StatLD      = "LD%"
	StatHRFB    = "HR/FB"
	StatPull    = "Pull%"
	StatPullAir = "Pull-Air%"
	StatSwing   = "Swing%"
	StatContact = "Contact%"
	StatCSW     = "CSW%"
	StatBIP     = "BIP"
)

// AdvancedStatKeys lists every key the pipeline may write into a player
// record. The merge stage deletes exactly these before rewriting, so stale
// values from an earlier run never survive a recomputation.
var AdvancedStatKeys = []string{
	StatGB, StatFB, StatLD, StatHRFB,
	StatPull, StatPullAir,
	StatSwing, StatContact, StatCSW,
	StatBIP,
}

// Split keys by opponent handedness.
const (
	SplitVsLeft  = "vsL"
	SplitVsRight = "vsR"
)

// DefaultLevel is used when a game record carries no level.
const DefaultLevel = "MiLB"

// Levels lists the competition tiers, highest first.
var Levels = []string{"AAA", "AA", "A+", "A", "CPX", DefaultLevel}
