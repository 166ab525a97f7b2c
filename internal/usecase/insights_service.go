package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"github.com/riskibarqy/match-insights/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	defaultInsightsCacheTTL = 24 * time.Hour
	defaultHeadToHeadLimit  = 10
)

var errOrchestrationFailed = errors.New("insights orchestration failed")

// MatchDataSource provides one insights section per call. Implementations
// return an empty slice with the error when a section cannot be served.
type MatchDataSource interface {
	Standings(ctx context.Context, leagueID int64, season int) ([]insights.Standing, error)
	HeadToHead(ctx context.Context, homeTeamID, awayTeamID int64, last int) ([]insights.FixtureSummary, error)
	Events(ctx context.Context, fixtureID int64) ([]insights.Event, error)
	Lineups(ctx context.Context, fixtureID int64) ([]insights.Lineup, error)
	TopScorers(ctx context.Context, leagueID int64, season int) ([]insights.TopScorer, error)
	Squad(ctx context.Context, teamID int64, season int) ([]insights.SquadPlayer, error)
	Coaches(ctx context.Context, teamID int64) ([]insights.Coach, error)
	Transfers(ctx context.Context, teamID int64) ([]insights.Transfer, error)
	Trophies(ctx context.Context, coachID int64) ([]insights.Trophy, error)
	Injuries(ctx context.Context, fixtureID int64) ([]insights.Injury, error)
	PreMatchOdds(ctx context.Context, fixtureID int64) ([]insights.OddsSummary, error)
	LiveOdds(ctx context.Context, fixtureID int64) ([]insights.OddsSummary, error)
	Statistics(ctx context.Context, fixtureID int64) ([]insights.TeamStatistics, error)
	UpcomingFixtures(ctx context.Context, leagueID int64, season, next int) ([]insights.FixtureSummary, error)
}

// RequestCoalescer shares one in-flight aggregation among callers of a key.
type RequestCoalescer interface {
	Do(key string, fn func() (any, error)) (any, error, bool)
	DoFresh(key string, fn func() (any, error)) (any, error)
}

type InsightsServiceConfig struct {
	CacheTTL        time.Duration
	HeadToHeadLimit int
	Clock           clockwork.Clock
	Logger          *logging.Logger
}

type InsightsService struct {
	source   MatchDataSource
	cache    insights.CacheRepository
	flight   RequestCoalescer
	ttl      time.Duration
	h2hLimit int
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewInsightsService(
	source MatchDataSource,
	cache insights.CacheRepository,
	flight RequestCoalescer,
	cfg InsightsServiceConfig,
) *InsightsService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultInsightsCacheTTL
	}
	if cfg.HeadToHeadLimit <= 0 {
		cfg.HeadToHeadLimit = defaultHeadToHeadLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &InsightsService{
		source:   source,
		cache:    cache,
		flight:   flight,
		ttl:      cfg.CacheTTL,
		h2hLimit: cfg.HeadToHeadLimit,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
}

// Get returns the insights composite of a match. Upstream and cache failures
// degrade the result instead of failing it; only invalid input and
// misconfiguration are returned as errors.
func (s *InsightsService) Get(ctx context.Context, match insights.Match, opts insights.Options) (insights.Composite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.Get")
	defer span.End()

	if err := match.Validate(); err != nil {
		return insights.Composite{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	key := match.Key()

	if !opts.ForceRefresh {
		if entry, ok := s.readCache(ctx, key); ok {
			if entry.Fresh(s.clock.Now()) || opts.AllowStale {
				return entry.Data, nil
			}
		}
	}

	// Aggregation outlives the caller that started it; coalesced callers
	// depend on its result.
	aggregateCtx := context.WithoutCancel(ctx)
	run := func() (any, error) {
		return s.aggregate(aggregateCtx, key, match)
	}

	var (
		out any
		err error
	)
	if opts.ForceRefresh {
		out, err = s.flight.DoFresh(key, run)
	} else {
		out, err, _ = s.flight.Do(key, run)
	}

	if err != nil {
		if errors.Is(err, ErrMisconfigured) {
			return insights.Composite{}, err
		}
		s.logger.ErrorContext(ctx, "insights aggregation failed, serving fallback", "key", key, "error", err)
		return s.fallback(ctx, key), nil
	}

	composite, ok := out.(insights.Composite)
	if !ok {
		s.logger.ErrorContext(ctx, "insights aggregation returned unexpected type", "key", key, "type", fmt.Sprintf("%T", out))
		return s.fallback(ctx, key), nil
	}
	return composite, nil
}

func (s *InsightsService) aggregate(ctx context.Context, key string, match insights.Match) (any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.aggregate")
	defer span.End()

	start := s.clock.Now()
	composite, failures, err := s.fanOut(ctx, match)
	if err != nil {
		return nil, err
	}
	if misconfigured := failures.misconfigured(); misconfigured != nil {
		return nil, misconfigured
	}
	if failed := failures.sections(); len(failed) > 0 {
		s.logger.WarnContext(ctx, "insights sections degraded",
			"key", key,
			"sections", strings.Join(failed, ","),
			"error", failures.joined(),
		)
	}

	entry := insights.CacheEntry{
		Data:     composite.Normalize(),
		CachedAt: s.clock.Now(),
		TTL:      s.ttl,
	}
	if err := s.cache.Set(ctx, key, entry); err != nil {
		s.logger.WarnContext(ctx, "write insights cache failed", "key", key, "error", err)
	}

	s.logger.InfoContext(ctx, "insights aggregated",
		"key", key,
		"failed_sections", len(failures.sections()),
		"duration_ms", s.clock.Since(start).Milliseconds(),
	)
	return entry.Data, nil
}

// fanOut runs every section call concurrently and waits for all of them.
// A panic in any section is reported as an orchestration failure.
func (s *InsightsService) fanOut(ctx context.Context, match insights.Match) (insights.Composite, *sectionFailures, error) {
	var (
		out      insights.Composite
		failures = &sectionFailures{}
		season   = match.ResolvedSeason()
		wg       conc.WaitGroup
	)

	wg.Go(collectSection(ctx, failures, "standings", &out.Standings, func(ctx context.Context) ([]insights.Standing, error) {
		return s.source.Standings(ctx, match.LeagueID, season)
	}))
	wg.Go(collectSection(ctx, failures, "headToHead", &out.HeadToHead, func(ctx context.Context) ([]insights.FixtureSummary, error) {
		return s.source.HeadToHead(ctx, match.HomeTeamID, match.AwayTeamID, s.h2hLimit)
	}))
	wg.Go(collectSection(ctx, failures, "topScorers", &out.TopScorers, func(ctx context.Context) ([]insights.TopScorer, error) {
		return s.source.TopScorers(ctx, match.LeagueID, season)
	}))

	for _, side := range []struct {
		name      string
		teamID    int64
		coachID   int64
		squads    *[]insights.SquadPlayer
		coaches   *[]insights.Coach
		transfers *[]insights.Transfer
		trophies  *[]insights.Trophy
	}{
		{"home", match.HomeTeamID, match.HomeCoachID, &out.Squads.Home, &out.Coaches.Home, &out.Transfers.Home, &out.Trophies.Home},
		{"away", match.AwayTeamID, match.AwayCoachID, &out.Squads.Away, &out.Coaches.Away, &out.Transfers.Away, &out.Trophies.Away},
	} {
		teamID, coachID := side.teamID, side.coachID
		wg.Go(collectSection(ctx, failures, "squads."+side.name, side.squads, func(ctx context.Context) ([]insights.SquadPlayer, error) {
			return s.source.Squad(ctx, teamID, season)
		}))
		wg.Go(collectSection(ctx, failures, "transfers."+side.name, side.transfers, func(ctx context.Context) ([]insights.Transfer, error) {
			return s.source.Transfers(ctx, teamID)
		}))

		coachesName, trophiesName := "coaches."+side.name, "trophies."+side.name
		if coachID > 0 {
			wg.Go(collectSection(ctx, failures, coachesName, side.coaches, func(ctx context.Context) ([]insights.Coach, error) {
				return s.source.Coaches(ctx, teamID)
			}))
			wg.Go(collectSection(ctx, failures, trophiesName, side.trophies, func(ctx context.Context) ([]insights.Trophy, error) {
				return s.source.Trophies(ctx, coachID)
			}))
			continue
		}

		// Without a caller supplied coach the trophy lookup waits for the
		// team's coach list.
		coaches, trophies := side.coaches, side.trophies
		wg.Go(func() {
			collectSection(ctx, failures, coachesName, coaches, func(ctx context.Context) ([]insights.Coach, error) {
				return s.source.Coaches(ctx, teamID)
			})()
			derived := currentCoachID(*coaches, teamID)
			if derived <= 0 {
				return
			}
			collectSection(ctx, failures, trophiesName, trophies, func(ctx context.Context) ([]insights.Trophy, error) {
				return s.source.Trophies(ctx, derived)
			})()
		})
	}

	// Fixture scoped sections need the upstream fixture id.
	if match.ID > 0 {
		fixtureID := match.ID
		wg.Go(collectSection(ctx, failures, "events", &out.Events, func(ctx context.Context) ([]insights.Event, error) {
			return s.source.Events(ctx, fixtureID)
		}))
		wg.Go(collectSection(ctx, failures, "lineups", &out.Lineups, func(ctx context.Context) ([]insights.Lineup, error) {
			return s.source.Lineups(ctx, fixtureID)
		}))
		wg.Go(collectSection(ctx, failures, "injuries", &out.Injuries, func(ctx context.Context) ([]insights.Injury, error) {
			return s.source.Injuries(ctx, fixtureID)
		}))
		wg.Go(collectSection(ctx, failures, "odds.preMatch", &out.Odds.PreMatch, func(ctx context.Context) ([]insights.OddsSummary, error) {
			return s.source.PreMatchOdds(ctx, fixtureID)
		}))
		wg.Go(collectSection(ctx, failures, "odds.live", &out.Odds.Live, func(ctx context.Context) ([]insights.OddsSummary, error) {
			return s.source.LiveOdds(ctx, fixtureID)
		}))
		wg.Go(collectSection(ctx, failures, "statistics", &out.Statistics, func(ctx context.Context) ([]insights.TeamStatistics, error) {
			return s.source.Statistics(ctx, fixtureID)
		}))
	}

	if recovered := wg.WaitAndRecover(); recovered != nil {
		return insights.Composite{}, failures, fmt.Errorf("%w: %s", errOrchestrationFailed, recovered.String())
	}
	return out.Normalize(), failures, nil
}

// currentCoachID picks the first coach attached to teamID, falling back to
// the first coach with an id.
func currentCoachID(coaches []insights.Coach, teamID int64) int64 {
	var first int64
	for _, coach := range coaches {
		if coach.ID <= 0 {
			continue
		}
		if coach.Team.ID == teamID {
			return coach.ID
		}
		if first == 0 {
			first = coach.ID
		}
	}
	return first
}

func collectSection[T any](
	ctx context.Context,
	failures *sectionFailures,
	name string,
	dst *[]T,
	call func(context.Context) ([]T, error),
) func() {
	return func() {
		items, err := call(ctx)
		if err != nil {
			failures.add(name, err)
			*dst = []T{}
			return
		}
		*dst = items
	}
}

func (s *InsightsService) readCache(ctx context.Context, key string) (insights.CacheEntry, bool) {
	entry, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "read insights cache failed", "key", key, "error", err)
		return insights.CacheEntry{}, false
	}
	return entry, ok
}

// fallback serves any cached entry regardless of age, else an empty composite.
func (s *InsightsService) fallback(ctx context.Context, key string) insights.Composite {
	if entry, ok := s.readCache(ctx, key); ok {
		return entry.Data
	}
	return insights.Empty()
}

type sectionFailure struct {
	name string
	err  error
}

type sectionFailures struct {
	mu    sync.Mutex
	items []sectionFailure
}

func (f *sectionFailures) add(name string, err error) {
	f.mu.Lock()
	f.items = append(f.items, sectionFailure{name: name, err: err})
	f.mu.Unlock()
}

func (f *sectionFailures) sections() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item.name)
	}
	return out
}

func (f *sectionFailures) joined() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make([]error, 0, len(f.items))
	for _, item := range f.items {
		errs = append(errs, fmt.Errorf("%s: %w", item.name, item.err))
	}
	return errors.Join(errs...)
}

func (f *sectionFailures) misconfigured() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range f.items {
		if errors.Is(item.err, ErrMisconfigured) {
			return item.err
		}
	}
	return nil
}
