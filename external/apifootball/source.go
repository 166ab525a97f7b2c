package apifootball

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"github.com/riskibarqy/match-insights/internal/usecase"
)

const (
	pathFixtures   = "fixtures"
	pathHeadToHead = "fixtures/headtohead"
	pathEvents     = "fixtures/events"
	pathLineups    = "fixtures/lineups"
	pathStatistics = "fixtures/statistics"
	pathTopScorers = "players/topscorers"
	pathPlayers    = "players"
	pathCoaches    = "coachs"
	pathTransfers  = "transfers"
	pathTrophies   = "trophies"
	pathInjuries   = "injuries"
	pathOdds       = "odds"
	pathLiveOdds   = "odds/live"
	pathStandings  = "standings"
)

// Source serves every insights section from API-Football.
type Source struct {
	client *Client
}

var _ usecase.MatchDataSource = (*Source)(nil)

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

func (s *Source) Standings(ctx context.Context, leagueID int64, season int) ([]insights.Standing, error) {
	env, err := fetchEnvelope[standingsItem](ctx, s.client, pathStandings, Params{"league": leagueID, "season": season})
	if err != nil {
		return mapStandings(nil), err
	}
	return mapStandings(env), nil
}

func (s *Source) HeadToHead(ctx context.Context, homeTeamID, awayTeamID int64, last int) ([]insights.FixtureSummary, error) {
	params := Params{
		"h2h":  fmt.Sprintf("%d-%d", homeTeamID, awayTeamID),
		"last": last,
	}
	env, err := fetchEnvelope[fixtureItem](ctx, s.client, pathHeadToHead, params)
	if err != nil {
		return mapFixtures(nil), err
	}
	return mapFixtures(env), nil
}

func (s *Source) Events(ctx context.Context, fixtureID int64) ([]insights.Event, error) {
	env, err := fetchEnvelope[eventItem](ctx, s.client, pathEvents, Params{"fixture": fixtureID})
	if err != nil {
		return mapEvents(nil), err
	}
	return mapEvents(env), nil
}

func (s *Source) Lineups(ctx context.Context, fixtureID int64) ([]insights.Lineup, error) {
	env, err := fetchEnvelope[lineupItem](ctx, s.client, pathLineups, Params{"fixture": fixtureID})
	if err != nil {
		return mapLineups(nil), err
	}
	return mapLineups(env), nil
}

func (s *Source) TopScorers(ctx context.Context, leagueID int64, season int) ([]insights.TopScorer, error) {
	env, err := fetchEnvelope[playerItem](ctx, s.client, pathTopScorers, Params{"league": leagueID, "season": season})
	if err != nil {
		return mapTopScorers(nil), err
	}
	return mapTopScorers(env), nil
}

// Squad reads the first page of the players resource only.
func (s *Source) Squad(ctx context.Context, teamID int64, season int) ([]insights.SquadPlayer, error) {
	env, err := fetchEnvelope[playerItem](ctx, s.client, pathPlayers, Params{"team": teamID, "season": season})
	if err != nil {
		return mapSquad(nil), err
	}
	return mapSquad(env), nil
}

func (s *Source) Coaches(ctx context.Context, teamID int64) ([]insights.Coach, error) {
	env, err := fetchEnvelope[coachItem](ctx, s.client, pathCoaches, Params{"team": teamID})
	if err != nil {
		return mapCoaches(nil), err
	}
	return mapCoaches(env), nil
}

func (s *Source) Transfers(ctx context.Context, teamID int64) ([]insights.Transfer, error) {
	env, err := fetchEnvelope[transferItem](ctx, s.client, pathTransfers, Params{"team": teamID})
	if err != nil {
		return mapTransfers(nil), err
	}
	return mapTransfers(env), nil
}

func (s *Source) Trophies(ctx context.Context, coachID int64) ([]insights.Trophy, error) {
	env, err := fetchEnvelope[trophyItem](ctx, s.client, pathTrophies, Params{"coach": coachID})
	if err != nil {
		return mapTrophies(nil), err
	}
	return mapTrophies(env), nil
}

func (s *Source) Injuries(ctx context.Context, fixtureID int64) ([]insights.Injury, error) {
	env, err := fetchEnvelope[injuryItem](ctx, s.client, pathInjuries, Params{"fixture": fixtureID})
	if err != nil {
		return mapInjuries(nil), err
	}
	return mapInjuries(env), nil
}

func (s *Source) PreMatchOdds(ctx context.Context, fixtureID int64) ([]insights.OddsSummary, error) {
	env, err := fetchEnvelope[oddsItem](ctx, s.client, pathOdds, Params{"fixture": fixtureID})
	if err != nil {
		return mapPreMatchOdds(nil), err
	}
	return mapPreMatchOdds(env), nil
}

func (s *Source) LiveOdds(ctx context.Context, fixtureID int64) ([]insights.OddsSummary, error) {
	env, err := fetchEnvelope[liveOddsItem](ctx, s.client, pathLiveOdds, Params{"fixture": fixtureID})
	if err != nil {
		return mapLiveOdds(nil), err
	}
	return mapLiveOdds(env), nil
}

func (s *Source) Statistics(ctx context.Context, fixtureID int64) ([]insights.TeamStatistics, error) {
	env, err := fetchEnvelope[statisticsItem](ctx, s.client, pathStatistics, Params{"fixture": fixtureID})
	if err != nil {
		return mapStatistics(nil), err
	}
	return mapStatistics(env), nil
}

func (s *Source) UpcomingFixtures(ctx context.Context, leagueID int64, season, next int) ([]insights.FixtureSummary, error) {
	env, err := fetchEnvelope[fixtureItem](ctx, s.client, pathFixtures, Params{"league": leagueID, "season": season, "next": next})
	if err != nil {
		return mapFixtures(nil), err
	}
	return mapFixtures(env), nil
}

// fetchEnvelope turns an unusable response into an error so the caller can
// leave its section empty. Upstream reports plan and credential problems in
// the errors field of a 200 response.
func fetchEnvelope[T any](ctx context.Context, c *Client, path string, params Params) (*Envelope[T], error) {
	res, err := FetchResource[Envelope[T]](ctx, c, path, params)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "api-football %s status=%d reason=%s", path, res.Status, res.Reason)
	}
	if res.Data == nil {
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "api-football %s returned no json body", path)
	}
	if messages := res.Data.errorMessages(); len(messages) > 0 {
		return nil, crerr.Wrapf(usecase.ErrDependencyUnavailable, "api-football %s: %s", path, strings.Join(messages, "; "))
	}
	return res.Data, nil
}
