// Package mlb provides a minimal client for the MLB Stats API v1.
package mlb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// baseURL is the root endpoint for the MLB Stats API v1.
const baseURL = "https://statsapi.mlb.com/api/v1"

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

// SportIDs maps MiLB level names to the API's sport ids.
var SportIDs = map[string]int{
	"AAA": 11,
	"AA":  12,
	"A+":  13,
	"A":   14,
	"CPX": 16,
}

// levelBySportID is the reverse of SportIDs.
var levelBySportID = func() map[int]string {
	m := make(map[int]string, len(SportIDs))
	for level, id := range SportIDs {
		m[id] = level
	}
	return m
}()

// Client is a minimal MLB Stats API client with linear-backoff retries.
type Client struct {
	http *http.Client
}

// NewClient returns an API client. No authentication is required.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// get performs a GET request with retries and JSON-decodes the response
// body into out.
func (c *Client) get(path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay * time.Duration(attempt))
		}
		req, err := http.NewRequest("GET", baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "milbstats/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("GET %s: %w", path, err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
			continue
		}
		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("GET %s: decode: %w", path, err)
			continue
		}
		return nil
	}
	return lastErr
}

// ScheduleTeam is one side of a scheduled game.
type ScheduleTeam struct {
	Team struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Sport struct {
			ID int `json:"id"`
		} `json:"sport"`
	} `json:"team"`
}

// ScheduleGame holds the fields we need from /schedule.
type ScheduleGame struct {
	GamePk       int    `json:"gamePk"`
	OfficialDate string `json:"officialDate"`
	GameDate     string `json:"gameDate"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
	} `json:"status"`
	Sport struct {
		ID int `json:"id"`
	} `json:"sport"`
	Teams struct {
		Away ScheduleTeam `json:"away"`
		Home ScheduleTeam `json:"home"`
	} `json:"teams"`
}

// Date returns the game's calendar date (YYYY-MM-DD).
func (g *ScheduleGame) Date() string {
	if g.OfficialDate != "" {
		return g.OfficialDate
	}
	if len(g.GameDate) >= 10 {
		return g.GameDate[:10]
	}
	return ""
}

// Level resolves the game's competition level from its sport id, falling
// back to the teams' sport ids, then to the generic MiLB label.
func (g *ScheduleGame) Level() string {
	if level, ok := levelBySportID[g.Sport.ID]; ok {
		return level
	}
	if level, ok := levelBySportID[g.Teams.Away.Team.Sport.ID]; ok {
		return level
	}
	if level, ok := levelBySportID[g.Teams.Home.Team.Sport.ID]; ok {
		return level
	}
	return "MiLB"
}

// FinalGames returns every completed MiLB regular-season game on the
// given date (YYYY-MM-DD), across all levels.
func (c *Client) FinalGames(date string) ([]ScheduleGame, error) {
	sportIDs := ""
	for _, id := range []int{11, 12, 13, 14, 16} {
		if sportIDs != "" {
			sportIDs += ","
		}
		sportIDs += fmt.Sprintf("%d", id)
	}

	q := url.Values{}
	q.Set("sportId", sportIDs)
	q.Set("date", date)
	q.Set("gameType", "R")
	q.Set("hydrate", "team")

	var resp struct {
		Dates []struct {
			Games []ScheduleGame `json:"games"`
		} `json:"dates"`
	}
	if err := c.get("/schedule?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	var games []ScheduleGame
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			if g.Status.AbstractGameState == "Final" {
				games = append(games, g)
			}
		}
	}
	return games, nil
}

// PlayEvent is one event within a plate appearance; pitches carry a call
// code and, on the ball-in-play pitch, trajectory and hit coordinates.
type PlayEvent struct {
	IsPitch bool `json:"isPitch"`
	Details struct {
		Call struct {
			Code string `json:"code"`
		} `json:"call"`
	} `json:"details"`
	HitData struct {
		Trajectory  string `json:"trajectory"`
		Coordinates struct {
			CoordX *float64 `json:"coordX"`
		} `json:"coordinates"`
	} `json:"hitData"`
}

// Play is one plate appearance from /game/{pk}/playByPlay.
type Play struct {
	Matchup struct {
		Batter struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"batter"`
		Pitcher struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"pitcher"`
		BatSide struct {
			Code string `json:"code"`
		} `json:"batSide"`
		PitchHand struct {
			Code string `json:"code"`
		} `json:"pitchHand"`
	} `json:"matchup"`
	Result struct {
		Event       string `json:"event"`
		EventType   string `json:"eventType"`
		Description string `json:"description"`
		RBI         int    `json:"rbi"`
		IsOut       bool   `json:"isOut"`
	} `json:"result"`
	PlayEvents []PlayEvent `json:"playEvents"`
}

// PlayByPlay is the play-by-play feed for one game.
type PlayByPlay struct {
	AllPlays []Play `json:"allPlays"`
}

// PlayByPlay fetches the play-by-play feed for a game.
func (c *Client) PlayByPlay(gamePk int) (*PlayByPlay, error) {
	var pbp PlayByPlay
	if err := c.get(fmt.Sprintf("/game/%d/playByPlay", gamePk), &pbp); err != nil {
		return nil, err
	}
	return &pbp, nil
}
