package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"github.com/riskibarqy/match-insights/internal/platform/id"
	"github.com/riskibarqy/match-insights/internal/platform/logging"
)

const (
	defaultWarmupNextFixtures = 10
	defaultWarmupWorkers      = 4
	maxWarmupWorkers          = 32
	maxWarmupNextFixtures     = 50
)

// InsightsGetter is the part of InsightsService the warm-up depends on.
type InsightsGetter interface {
	Get(ctx context.Context, match insights.Match, opts insights.Options) (insights.Composite, error)
}

type WarmupTarget struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gt=1900"`
}

type WarmupRequest struct {
	Targets []WarmupTarget
	Next    int
	Force   bool
}

type WarmupResult struct {
	RunID      string              `json:"run_id"`
	Targets    int                 `json:"targets"`
	Fixtures   int                 `json:"fixtures"`
	Warmed     int                 `json:"warmed"`
	Failed     int                 `json:"failed"`
	DurationMs int64               `json:"duration_ms"`
	Errors     []WarmupTargetError `json:"errors,omitempty"`
}

type WarmupTargetError struct {
	LeagueID  int64  `json:"league_id"`
	Season    int    `json:"season"`
	FixtureID int64  `json:"fixture_id,omitempty"`
	Message   string `json:"message"`
}

type InsightsWarmupConfig struct {
	Workers int
	Next    int
	Logger  *logging.Logger
}

// InsightsWarmupService pre-aggregates insights for upcoming fixtures so
// user requests hit a fresh cache.
type InsightsWarmupService struct {
	source  MatchDataSource
	getter  InsightsGetter
	ids     id.Generator
	workers int
	next    int
	logger  *logging.Logger
}

func NewInsightsWarmupService(source MatchDataSource, getter InsightsGetter, ids id.Generator, cfg InsightsWarmupConfig) *InsightsWarmupService {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWarmupWorkers
	}
	if cfg.Workers > maxWarmupWorkers {
		cfg.Workers = maxWarmupWorkers
	}
	if cfg.Next <= 0 {
		cfg.Next = defaultWarmupNextFixtures
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &InsightsWarmupService{
		source:  source,
		getter:  getter,
		ids:     ids,
		workers: cfg.Workers,
		next:    cfg.Next,
		logger:  cfg.Logger,
	}
}

func (s *InsightsWarmupService) Run(ctx context.Context, req WarmupRequest) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsWarmupService.Run")
	defer span.End()

	if len(req.Targets) == 0 {
		return WarmupResult{}, fmt.Errorf("%w: at least one warm-up target is required", ErrInvalidInput)
	}
	next := req.Next
	if next <= 0 {
		next = s.next
	}
	if next > maxWarmupNextFixtures {
		return WarmupResult{}, fmt.Errorf("%w: next must be <= %d", ErrInvalidInput, maxWarmupNextFixtures)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return WarmupResult{}, fmt.Errorf("generate warm-up run id: %w", err)
	}

	start := time.Now()
	result := WarmupResult{RunID: runID, Targets: len(req.Targets)}
	matches := make([]warmupMatch, 0, len(req.Targets)*next)
	for _, target := range req.Targets {
		fixtures, err := s.source.UpcomingFixtures(ctx, target.LeagueID, target.Season, next)
		if err != nil {
			s.logger.WarnContext(ctx, "list upcoming fixtures failed",
				"run_id", runID,
				"league_id", target.LeagueID,
				"season", target.Season,
				"error", err,
			)
			result.Errors = append(result.Errors, WarmupTargetError{
				LeagueID: target.LeagueID,
				Season:   target.Season,
				Message:  err.Error(),
			})
			continue
		}
		for _, fixture := range fixtures {
			matches = append(matches, warmupMatch{target: target, match: matchFromFixture(fixture, target)})
		}
	}
	result.Fixtures = len(matches)

	warmed, failed, taskErrors, err := s.warm(ctx, matches, req.Force)
	if err != nil {
		return WarmupResult{}, err
	}
	result.Warmed = warmed
	result.Failed = failed + len(result.Errors)
	result.Errors = append(result.Errors, taskErrors...)
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "insights warm-up finished",
		"run_id", runID,
		"targets", result.Targets,
		"fixtures", result.Fixtures,
		"warmed", result.Warmed,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

type warmupMatch struct {
	target WarmupTarget
	match  insights.Match
}

func (s *InsightsWarmupService) warm(ctx context.Context, matches []warmupMatch, force bool) (int, int, []WarmupTargetError, error) {
	if len(matches) == 0 {
		return 0, 0, nil, nil
	}

	workerCount := s.workers
	if workerCount > len(matches) {
		workerCount = len(matches)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		warmed  atomic.Int32
		mu      sync.Mutex
		errs    []WarmupTargetError
		workers sync.WaitGroup
	)
	for _, item := range matches {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, err := s.getter.Get(ctx, item.match, insights.Options{ForceRefresh: force}); err != nil {
				mu.Lock()
				errs = append(errs, WarmupTargetError{
					LeagueID:  item.target.LeagueID,
					Season:    item.target.Season,
					FixtureID: item.match.ID,
					Message:   err.Error(),
				})
				mu.Unlock()
				return
			}
			warmed.Add(1)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return 0, 0, nil, fmt.Errorf("submit warm-up task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(errs, func(i, j int) bool { return errs[i].FixtureID < errs[j].FixtureID })
	return int(warmed.Load()), len(errs), errs, nil
}

func matchFromFixture(fixture insights.FixtureSummary, target WarmupTarget) insights.Match {
	leagueID := fixture.LeagueID
	if leagueID <= 0 {
		leagueID = target.LeagueID
	}
	season := fixture.Season
	if season <= 0 {
		season = target.Season
	}
	return insights.Match{
		ID:         fixture.ID,
		LeagueID:   leagueID,
		Season:     season,
		HomeTeamID: fixture.HomeTeam.ID,
		AwayTeamID: fixture.AwayTeam.ID,
		KickoffAt:  fixture.Date,
	}
}
