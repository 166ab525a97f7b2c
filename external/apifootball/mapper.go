package apifootball

import (
	"strings"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
)

// Mappers accept a decoded envelope or nil and always return a non-nil slice.
// Rows without an identity are dropped rather than defaulted.

func mapStandings(env *Envelope[standingsItem]) []insights.Standing {
	out := make([]insights.Standing, 0, 20)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.League == nil {
			continue
		}
		for _, group := range item.League.Standings {
			for _, row := range group {
				team := toTeamRef(row.Team)
				if team.ID <= 0 {
					continue
				}

				standing := insights.Standing{
					Rank:        asInt(row.Rank),
					Team:        team,
					Points:      asInt(row.Points),
					GoalsDiff:   asInt(row.GoalsDiff),
					Group:       strings.TrimSpace(row.Group),
					Form:        derefString(row.Form),
					Description: derefString(row.Description),
				}
				if row.All != nil {
					standing.Played = asInt(row.All.Played)
					standing.Win = asInt(row.All.Win)
					standing.Draw = asInt(row.All.Draw)
					standing.Lose = asInt(row.All.Lose)
					if row.All.Goals != nil {
						standing.GoalsFor = asInt(row.All.Goals.For)
						standing.GoalsAgainst = asInt(row.All.Goals.Against)
					}
				}
				out = append(out, standing)
			}
		}
	}
	return out
}

func mapFixtures(env *Envelope[fixtureItem]) []insights.FixtureSummary {
	out := make([]insights.FixtureSummary, 0, 10)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.Fixture == nil || item.Teams == nil {
			continue
		}
		id := asInt64(item.Fixture.ID)
		home := toTeamRef(item.Teams.Home)
		away := toTeamRef(item.Teams.Away)
		if id <= 0 || home.ID <= 0 || away.ID <= 0 {
			continue
		}

		summary := insights.FixtureSummary{
			ID:       id,
			Date:     parseProviderDateTime(item.Fixture.Date),
			HomeTeam: home,
			AwayTeam: away,
			Score:    resolveScore(fixtureScoreEntries(item)),
		}
		if item.Fixture.Status != nil {
			summary.Status = firstNonEmpty(item.Fixture.Status.Short, item.Fixture.Status.Long)
			if elapsed, ok := asFloat64(item.Fixture.Status.Elapsed); ok {
				summary.Elapsed = ptrInt(int(elapsed))
			}
		}
		if item.Fixture.Venue != nil {
			summary.Venue = strings.TrimSpace(item.Fixture.Venue.Name)
		}
		if item.League != nil {
			summary.LeagueID = asInt64(item.League.ID)
			summary.LeagueName = strings.TrimSpace(item.League.Name)
			summary.Season = asInt(item.League.Season)
		}
		out = append(out, summary)
	}
	return out
}

func mapEvents(env *Envelope[eventItem]) []insights.Event {
	out := make([]insights.Event, 0, 16)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		eventType := strings.TrimSpace(item.Type)
		if eventType == "" {
			continue
		}

		event := insights.Event{
			Team:     toTeamRef(item.Team),
			Type:     eventType,
			Detail:   strings.TrimSpace(item.Detail),
			Comments: derefString(item.Comments),
		}
		if item.Time != nil {
			event.Minute = asInt(item.Time.Elapsed)
			event.Extra = asInt(item.Time.Extra)
		}
		if item.Player != nil {
			event.PlayerID = asInt64(item.Player.ID)
			event.PlayerName = strings.TrimSpace(item.Player.Name)
		}
		if item.Assist != nil {
			event.AssistID = asInt64(item.Assist.ID)
			event.AssistName = strings.TrimSpace(item.Assist.Name)
		}
		out = append(out, event)
	}
	return out
}

func mapLineups(env *Envelope[lineupItem]) []insights.Lineup {
	out := make([]insights.Lineup, 0, 2)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		team := toTeamRef(item.Team)
		if team.ID <= 0 {
			continue
		}

		lineup := insights.Lineup{
			Team:        team,
			Formation:   strings.TrimSpace(item.Formation),
			StartXI:     mapLineupPlayers(item.StartXI),
			Substitutes: mapLineupPlayers(item.Substitutes),
		}
		if item.Coach != nil {
			lineup.Coach = insights.CoachRef{
				ID:    asInt64(item.Coach.ID),
				Name:  strings.TrimSpace(item.Coach.Name),
				Photo: strings.TrimSpace(item.Coach.Photo),
			}
		}
		out = append(out, lineup)
	}
	return out
}

func mapLineupPlayers(slots []lineupPlayerSlot) []insights.LineupPlayer {
	out := make([]insights.LineupPlayer, 0, len(slots))
	for _, slot := range slots {
		if slot.Player == nil {
			continue
		}
		id := asInt64(slot.Player.ID)
		name := strings.TrimSpace(slot.Player.Name)
		if id <= 0 && name == "" {
			continue
		}
		out = append(out, insights.LineupPlayer{
			ID:       id,
			Name:     name,
			Number:   asInt(slot.Player.Number),
			Position: strings.TrimSpace(slot.Player.Pos),
			Grid:     derefString(slot.Player.Grid),
		})
	}
	return out
}

func mapTopScorers(env *Envelope[playerItem]) []insights.TopScorer {
	out := make([]insights.TopScorer, 0, 20)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.Player == nil {
			continue
		}
		id := asInt64(item.Player.ID)
		if id <= 0 {
			continue
		}

		scorer := insights.TopScorer{
			Rank:        len(out) + 1,
			PlayerID:    id,
			Name:        strings.TrimSpace(item.Player.Name),
			Photo:       strings.TrimSpace(item.Player.Photo),
			Nationality: strings.TrimSpace(item.Player.Nationality),
		}
		for _, stats := range item.Statistics {
			if scorer.Team.ID <= 0 {
				scorer.Team = toTeamRef(stats.Team)
			}
			if stats.Games != nil {
				scorer.Appearances += asInt(stats.Games.Appearences)
			}
			if stats.Goals != nil {
				scorer.Goals += asInt(stats.Goals.Total)
				scorer.Assists += asInt(stats.Goals.Assists)
			}
		}
		out = append(out, scorer)
	}
	return out
}

func mapSquad(env *Envelope[playerItem]) []insights.SquadPlayer {
	out := make([]insights.SquadPlayer, 0, 30)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.Player == nil {
			continue
		}
		id := asInt64(item.Player.ID)
		if id <= 0 {
			continue
		}

		player := insights.SquadPlayer{
			ID:          id,
			Name:        strings.TrimSpace(item.Player.Name),
			Age:         asInt(item.Player.Age),
			Nationality: strings.TrimSpace(item.Player.Nationality),
			Photo:       strings.TrimSpace(item.Player.Photo),
			Injured:     asBool(item.Player.Injured),
		}
		for _, stats := range item.Statistics {
			if stats.Games != nil {
				player.Position = firstNonEmpty(player.Position, stats.Games.Position)
				player.Appearances += asInt(stats.Games.Appearences)
			}
			if stats.Goals != nil {
				player.Goals += asInt(stats.Goals.Total)
			}
		}
		out = append(out, player)
	}
	return out
}

func mapCoaches(env *Envelope[coachItem]) []insights.Coach {
	out := make([]insights.Coach, 0, 1)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		id := asInt64(item.ID)
		if id <= 0 {
			continue
		}
		out = append(out, insights.Coach{
			ID:          id,
			Name:        strings.TrimSpace(item.Name),
			Age:         asInt(item.Age),
			Nationality: strings.TrimSpace(item.Nationality),
			Photo:       strings.TrimSpace(item.Photo),
			Team:        toTeamRef(item.Team),
		})
	}
	return out
}

// mapTransfers flattens the per-player transfer history into one row per move.
func mapTransfers(env *Envelope[transferItem]) []insights.Transfer {
	out := make([]insights.Transfer, 0, 32)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.Player == nil {
			continue
		}
		playerID := asInt64(item.Player.ID)
		if playerID <= 0 {
			continue
		}
		playerName := strings.TrimSpace(item.Player.Name)

		for _, move := range item.Transfers {
			transfer := insights.Transfer{
				PlayerID:   playerID,
				PlayerName: playerName,
				Date:       strings.TrimSpace(move.Date),
				Type:       asString(move.Type),
			}
			if move.Teams != nil {
				transfer.In = toTeamRef(move.Teams.In)
				transfer.Out = toTeamRef(move.Teams.Out)
			}
			out = append(out, transfer)
		}
	}
	return out
}

func mapTrophies(env *Envelope[trophyItem]) []insights.Trophy {
	out := make([]insights.Trophy, 0, 8)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		league := strings.TrimSpace(item.League)
		if league == "" {
			continue
		}
		out = append(out, insights.Trophy{
			League:  league,
			Country: strings.TrimSpace(item.Country),
			Season:  asString(item.Season),
			Place:   strings.TrimSpace(item.Place),
		})
	}
	return out
}

func mapInjuries(env *Envelope[injuryItem]) []insights.Injury {
	out := make([]insights.Injury, 0, 8)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		if item.Player == nil {
			continue
		}
		id := asInt64(item.Player.ID)
		if id <= 0 {
			continue
		}
		out = append(out, insights.Injury{
			PlayerID:   id,
			PlayerName: strings.TrimSpace(item.Player.Name),
			Photo:      strings.TrimSpace(item.Player.Photo),
			Type:       strings.TrimSpace(item.Player.Type),
			Reason:     strings.TrimSpace(item.Player.Reason),
			Team:       toTeamRef(item.Team),
		})
	}
	return out
}

type scoreEntry struct {
	tag  string
	pair *scorePair
}

func fixtureScoreEntries(item fixtureItem) []scoreEntry {
	entries := make([]scoreEntry, 0, 5)
	if item.Goals != nil {
		entries = append(entries, scoreEntry{tag: "current", pair: item.Goals})
	}
	if item.Score != nil {
		entries = append(entries,
			scoreEntry{tag: "fulltime", pair: item.Score.Fulltime},
			scoreEntry{tag: "extratime", pair: item.Score.Extratime},
			scoreEntry{tag: "halftime", pair: item.Score.Halftime},
			scoreEntry{tag: "penalty", pair: item.Score.Penalty},
		)
	}
	return entries
}

// resolveScore picks the highest weighted entry with at least one numeric
// side. It returns nil when no entry resolves.
func resolveScore(entries []scoreEntry) *insights.Score {
	var best *insights.Score
	bestWeight := 0
	for _, entry := range entries {
		if entry.pair == nil {
			continue
		}
		score, ok := entry.resolve()
		if !ok {
			continue
		}
		if weight := scoreTagWeight(entry.tag); weight > bestWeight {
			best = score
			bestWeight = weight
		}
	}
	return best
}

func (e scoreEntry) resolve() (*insights.Score, bool) {
	score := &insights.Score{}
	if home, ok := asFloat64(e.pair.Home); ok {
		score.Home = ptrInt(int(home))
	}
	if away, ok := asFloat64(e.pair.Away); ok {
		score.Away = ptrInt(int(away))
	}
	return score, score.Home != nil || score.Away != nil
}

func scoreTagWeight(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "current":
		return 4
	case "fulltime", "full-time", "full_time", "ft", "final":
		return 3
	case "extratime":
		return 2
	default:
		return 1
	}
}
