package mlb

import (
	"github.com/prospectlab/milbstats/internal/classify"
	"github.com/prospectlab/milbstats/internal/model"
)

// ExtractGame converts a play-by-play feed into a game record. Plays
// without a batter are skipped (game events, not plate appearances).
// Returns nil when the feed yields no at-bats.
func ExtractGame(g *ScheduleGame, pbp *PlayByPlay) *model.Game {
	if pbp == nil || len(pbp.AllPlays) == 0 {
		return nil
	}

	atBats := make([]model.AtBat, 0, len(pbp.AllPlays))
	for pi := range pbp.AllPlays {
		play := &pbp.AllPlays[pi]
		if play.Matchup.Batter.ID == 0 {
			continue
		}

		ab := model.AtBat{
			BatterID:    play.Matchup.Batter.ID,
			BatterName:  play.Matchup.Batter.FullName,
			BatterHand:  model.Hand(play.Matchup.BatSide.Code),
			PitcherID:   play.Matchup.Pitcher.ID,
			PitcherName: play.Matchup.Pitcher.FullName,
			PitcherHand: model.Hand(play.Matchup.PitchHand.Code),
			Result:      play.Result.Event,
			EventType:   play.Result.EventType,
			Description: play.Result.Description,
			RBI:         play.Result.RBI,
			IsOut:       play.Result.IsOut,
		}

		// Keep the per-pitch log and derive the aggregate counters
		// alongside it, so older readers of the day files still work.
		for _, ev := range play.PlayEvents {
			if !ev.IsPitch {
				continue
			}
			p := model.Pitch{
				Call:       ev.Details.Call.Code,
				Trajectory: ev.HitData.Trajectory,
				CoordX:     ev.HitData.Coordinates.CoordX,
			}
			ab.Pitches = append(ab.Pitches, p)

			f := classify.CallFlags(p.Call)
			if !f.IsPitch {
				continue
			}
			ab.PitchCount++
			if f.IsBall {
				ab.Balls++
			}
			if f.IsStrike {
				ab.Strikes++
			}
		}

		atBats = append(atBats, ab)
	}

	if len(atBats) == 0 {
		return nil
	}

	return &model.Game{
		GamePk: g.GamePk,
		Date:   g.Date(),
		Level:  g.Level(),
		AwayTeam: model.Team{
			ID:   g.Teams.Away.Team.ID,
			Name: g.Teams.Away.Team.Name,
		},
		HomeTeam: model.Team{
			ID:   g.Teams.Home.Team.ID,
			Name: g.Teams.Home.Team.Name,
		},
		AtBats: atBats,
	}
}
