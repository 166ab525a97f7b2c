package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
	usecasemock "github.com/riskibarqy/match-insights/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

type recordingGetter struct {
	mu      sync.Mutex
	calls   []insights.Match
	options []insights.Options
	failIDs map[int64]bool
}

func (g *recordingGetter) Get(_ context.Context, match insights.Match, opts insights.Options) (insights.Composite, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, match)
	g.options = append(g.options, opts)
	if g.failIDs[match.ID] {
		return insights.Composite{}, ErrMisconfigured
	}
	return insights.Empty(), nil
}

type staticIDs string

func (s staticIDs) NewID() (string, error) { return string(s), nil }

func TestInsightsWarmupService_Run(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewMatchDataSource(t)
	getter := &recordingGetter{failIDs: map[int64]bool{1002: true}}
	svc := NewInsightsWarmupService(source, getter, staticIDs("run-1"), InsightsWarmupConfig{Workers: 2, Next: 5})

	kickoff := time.Date(2025, 8, 23, 14, 0, 0, 0, time.UTC)
	source.On("UpcomingFixtures", mock.Anything, int64(39), 2025, 5).
		Return([]insights.FixtureSummary{
			{ID: 1001, LeagueID: 39, Season: 2025, Date: kickoff, HomeTeam: insights.TeamRef{ID: 42}, AwayTeam: insights.TeamRef{ID: 49}},
			{ID: 1002, LeagueID: 39, Season: 2025, Date: kickoff, HomeTeam: insights.TeamRef{ID: 33}, AwayTeam: insights.TeamRef{ID: 40}},
		}, nil).
		Once()
	source.On("UpcomingFixtures", mock.Anything, int64(140), 2025, 5).
		Return([]insights.FixtureSummary{}, errors.New("api-football fixtures status=429")).
		Once()

	result, err := svc.Run(context.Background(), WarmupRequest{
		Targets: []WarmupTarget{{LeagueID: 39, Season: 2025}, {LeagueID: 140, Season: 2025}},
		Force:   true,
	})
	if err != nil {
		t.Fatalf("run warm-up: %v", err)
	}

	if result.RunID != "run-1" || result.Targets != 2 || result.Fixtures != 2 {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if result.Warmed != 1 || result.Failed != 2 {
		t.Fatalf("expected warmed=1 failed=2, got warmed=%d failed=%d", result.Warmed, result.Failed)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 error rows, got=%+v", result.Errors)
	}

	if len(getter.calls) != 2 {
		t.Fatalf("expected 2 insights calls, got=%d", len(getter.calls))
	}
	for i, opts := range getter.options {
		if !opts.ForceRefresh {
			t.Fatalf("expected forced refresh for call %d", i)
		}
	}
	for _, m := range getter.calls {
		if m.LeagueID != 39 || m.Season != 2025 || !m.KickoffAt.Equal(kickoff) {
			t.Fatalf("unexpected match built from fixture: %+v", m)
		}
	}
}

func TestInsightsWarmupService_RunRejectsEmptyTargets(t *testing.T) {
	t.Parallel()

	svc := NewInsightsWarmupService(usecasemock.NewMatchDataSource(t), &recordingGetter{}, staticIDs("x"), InsightsWarmupConfig{})
	if _, err := svc.Run(context.Background(), WarmupRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.Run(context.Background(), WarmupRequest{
		Targets: []WarmupTarget{{LeagueID: 39, Season: 2025}},
		Next:    500,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for oversized next, got %v", err)
	}
}
