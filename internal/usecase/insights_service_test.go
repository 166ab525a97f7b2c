package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
	cacherepo "github.com/riskibarqy/match-insights/internal/infrastructure/repository/cache"
	insightsmock "github.com/riskibarqy/match-insights/internal/mocks/domain/insights"
	usecasemock "github.com/riskibarqy/match-insights/internal/mocks/usecase"
	basecache "github.com/riskibarqy/match-insights/internal/platform/cache"
	"github.com/riskibarqy/match-insights/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

var testKickoff = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

func testMatch() insights.Match {
	return insights.Match{
		ID:          1035037,
		LeagueID:    39,
		Season:      2025,
		HomeTeamID:  42,
		AwayTeamID:  49,
		HomeCoachID: 7,
		AwayCoachID: 8,
		KickoffAt:   testKickoff,
	}
}

type insightsFixture struct {
	source *usecasemock.MatchDataSource
	repo   *cacherepo.InsightsRepository
	clock  *clockwork.FakeClock
	svc    *InsightsService
}

func newInsightsFixture(t *testing.T) insightsFixture {
	t.Helper()

	source := usecasemock.NewMatchDataSource(t)
	repo := cacherepo.NewInsightsRepository(basecache.NewStore(0))
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC))
	svc := NewInsightsService(source, repo, &resilience.SingleFlight{}, InsightsServiceConfig{Clock: clock})
	return insightsFixture{source: source, repo: repo, clock: clock, svc: svc}
}

// expectFanOut registers every section call of m for times executions,
// except the named methods which the caller sets up itself.
func expectFanOut(src *usecasemock.MatchDataSource, m insights.Match, times int, except ...string) {
	skip := make(map[string]bool, len(except))
	for _, name := range except {
		skip[name] = true
	}
	expect := func(method string, ret any, args ...any) {
		if skip[method] {
			return
		}
		src.On(method, append([]any{mock.Anything}, args...)...).Return(ret, nil).Times(times)
	}

	expect("Standings", []insights.Standing{{Rank: 1, Team: insights.TeamRef{ID: 42, Name: "Arsenal"}, Points: 3}}, m.LeagueID, m.Season)
	expect("HeadToHead", []insights.FixtureSummary{{ID: 900, HomeTeam: insights.TeamRef{ID: 42}, AwayTeam: insights.TeamRef{ID: 49}}}, m.HomeTeamID, m.AwayTeamID, defaultHeadToHeadLimit)
	expect("TopScorers", []insights.TopScorer{{Rank: 1, PlayerID: 1100, Name: "Haaland", Goals: 2}}, m.LeagueID, m.Season)
	expect("Events", []insights.Event{{Minute: 12, Type: "Goal"}}, m.ID)
	expect("Lineups", []insights.Lineup{{Team: insights.TeamRef{ID: 42}, Formation: "4-3-3"}}, m.ID)
	expect("Injuries", []insights.Injury{{PlayerID: 5, PlayerName: "Timber"}}, m.ID)
	expect("PreMatchOdds", []insights.OddsSummary{{BookmakerID: 8, Bookmaker: "Bet365"}}, m.ID)
	expect("LiveOdds", []insights.OddsSummary{}, m.ID)
	expect("Statistics", []insights.TeamStatistics{{Team: insights.TeamRef{ID: 42}}}, m.ID)

	if !skip["Squad"] {
		src.On("Squad", mock.Anything, m.HomeTeamID, m.Season).Return([]insights.SquadPlayer{{ID: 1, Name: "Raya"}}, nil).Times(times)
		src.On("Squad", mock.Anything, m.AwayTeamID, m.Season).Return([]insights.SquadPlayer{{ID: 2, Name: "Pope"}}, nil).Times(times)
	}
	if !skip["Coaches"] {
		src.On("Coaches", mock.Anything, m.HomeTeamID).Return([]insights.Coach{{ID: m.HomeCoachID, Name: "Arteta"}}, nil).Times(times)
		src.On("Coaches", mock.Anything, m.AwayTeamID).Return([]insights.Coach{{ID: m.AwayCoachID, Name: "Howe"}}, nil).Times(times)
	}
	if !skip["Transfers"] {
		src.On("Transfers", mock.Anything, m.HomeTeamID).Return([]insights.Transfer{{PlayerID: 3}}, nil).Times(times)
		src.On("Transfers", mock.Anything, m.AwayTeamID).Return([]insights.Transfer{{PlayerID: 4}}, nil).Times(times)
	}
	if !skip["Trophies"] && m.HomeCoachID > 0 {
		src.On("Trophies", mock.Anything, m.HomeCoachID).Return([]insights.Trophy{{League: "FA Cup"}}, nil).Times(times)
	}
	if !skip["Trophies"] && m.AwayCoachID > 0 {
		src.On("Trophies", mock.Anything, m.AwayCoachID).Return([]insights.Trophy{}, nil).Times(times)
	}
}

func TestInsightsService_Get_ColdCachePartialFailure(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1, "Lineups")
	f.source.On("Lineups", mock.Anything, m.ID).
		Return([]insights.Lineup{}, errors.New("api-football fixtures/lineups status=500")).
		Once()

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if got.Lineups == nil || len(got.Lineups) != 0 {
		t.Fatalf("expected empty lineups, got=%+v", got.Lineups)
	}
	if len(got.Standings) != 1 || len(got.HeadToHead) != 1 {
		t.Fatalf("expected standings and head to head populated, got standings=%d h2h=%d", len(got.Standings), len(got.HeadToHead))
	}
	if len(got.Squads.Home) != 1 || len(got.Squads.Away) != 1 || len(got.Trophies.Home) != 1 {
		t.Fatalf("expected per-team sections populated, got=%+v", got.Squads)
	}

	entry, ok, err := f.repo.Get(context.Background(), m.Key())
	if err != nil || !ok {
		t.Fatalf("expected cache entry, ok=%v err=%v", ok, err)
	}
	if !entry.CachedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected cachedAt=%s, got=%s", f.clock.Now(), entry.CachedAt)
	}
	if entry.TTL != 24*time.Hour {
		t.Fatalf("expected ttl=24h, got=%s", entry.TTL)
	}
}

func TestInsightsService_Get_FreshCacheServedWithoutNetwork(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1)

	first, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("first get: %v", err)
	}

	f.clock.Advance(59 * time.Minute)
	second, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	if len(second.Standings) != len(first.Standings) || second.Standings[0].Team.Name != first.Standings[0].Team.Name {
		t.Fatalf("expected identical cached value, first=%+v second=%+v", first.Standings, second.Standings)
	}
	if len(second.Injuries) != 1 || second.Injuries[0].PlayerName != "Timber" {
		t.Fatalf("unexpected cached injuries: %+v", second.Injuries)
	}
}

func TestInsightsService_Get_ExpiredEntryRefreshes(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 2)

	if _, err := f.svc.Get(context.Background(), m, insights.Options{}); err != nil {
		t.Fatalf("first get: %v", err)
	}

	f.clock.Advance(24 * time.Hour)
	if _, err := f.svc.Get(context.Background(), m, insights.Options{}); err != nil {
		t.Fatalf("second get: %v", err)
	}

	entry, _, _ := f.repo.Get(context.Background(), m.Key())
	if !entry.CachedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected refreshed cachedAt=%s, got=%s", f.clock.Now(), entry.CachedAt)
	}
}

func TestInsightsService_Get_AllowStaleServesExpiredEntry(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1)

	if _, err := f.svc.Get(context.Background(), m, insights.Options{}); err != nil {
		t.Fatalf("first get: %v", err)
	}
	writtenAt := f.clock.Now()

	f.clock.Advance(72 * time.Hour)
	got, err := f.svc.Get(context.Background(), m, insights.Options{AllowStale: true})
	if err != nil {
		t.Fatalf("stale get: %v", err)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("expected stale standings, got=%+v", got.Standings)
	}

	entry, _, _ := f.repo.Get(context.Background(), m.Key())
	if !entry.CachedAt.Equal(writtenAt) {
		t.Fatalf("expected stale entry untouched, cachedAt=%s", entry.CachedAt)
	}
}

func TestInsightsService_Get_ForceRefreshOverwritesFreshEntry(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 2)

	if _, err := f.svc.Get(context.Background(), m, insights.Options{}); err != nil {
		t.Fatalf("first get: %v", err)
	}

	f.clock.Advance(time.Minute)
	if _, err := f.svc.Get(context.Background(), m, insights.Options{ForceRefresh: true}); err != nil {
		t.Fatalf("forced get: %v", err)
	}

	entry, _, _ := f.repo.Get(context.Background(), m.Key())
	if !entry.CachedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected overwritten cachedAt=%s, got=%s", f.clock.Now(), entry.CachedAt)
	}
}

func TestInsightsService_Get_CoalescesConcurrentCallers(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1, "Standings")

	release := make(chan struct{})
	f.source.On("Standings", mock.Anything, m.LeagueID, m.Season).
		Run(func(mock.Arguments) { <-release }).
		Return([]insights.Standing{{Rank: 1, Team: insights.TeamRef{ID: 42}}}, nil).
		Once()

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)
	results := make(chan insights.Composite, callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err := f.svc.Get(context.Background(), m, insights.Options{})
			if err != nil {
				t.Errorf("get insights: %v", err)
				return
			}
			results <- got
		}()
	}

	close(start)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	count := 0
	for got := range results {
		count++
		if len(got.Standings) != 1 {
			t.Fatalf("expected every caller to see standings, got=%+v", got.Standings)
		}
	}
	if count != callers {
		t.Fatalf("expected %d results, got=%d", callers, count)
	}
}

func TestInsightsService_Get_PanicFallsBackToStaleEntry(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()

	stale := insights.Empty()
	stale.Injuries = []insights.Injury{{PlayerID: 77, PlayerName: "stale"}}
	if err := f.repo.Set(context.Background(), m.Key(), insights.CacheEntry{
		Data:     stale,
		CachedAt: f.clock.Now().Add(-48 * time.Hour),
		TTL:      24 * time.Hour,
	}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	expectFanOut(f.source, m, 1, "Standings")
	f.source.On("Standings", mock.Anything, m.LeagueID, m.Season).
		Run(func(mock.Arguments) { panic("mapper exploded") }).
		Return([]insights.Standing{}, nil).
		Once()

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("expected fallback without error, got %v", err)
	}
	if len(got.Injuries) != 1 || got.Injuries[0].PlayerName != "stale" {
		t.Fatalf("expected stale entry data, got=%+v", got.Injuries)
	}
}

func TestInsightsService_Get_PanicWithoutCacheReturnsEmpty(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1, "Statistics")
	f.source.On("Statistics", mock.Anything, m.ID).
		Run(func(mock.Arguments) { panic("boom") }).
		Return([]insights.TeamStatistics{}, nil).
		Once()

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("expected fallback without error, got %v", err)
	}
	if got.Standings == nil || len(got.Standings) != 0 || got.Odds.Live == nil {
		t.Fatalf("expected empty complete composite, got=%+v", got)
	}
	if _, ok, _ := f.repo.Get(context.Background(), m.Key()); ok {
		t.Fatalf("expected no cache write after orchestration failure")
	}
}

func TestInsightsService_Get_MisconfigurationSurfaces(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	expectFanOut(f.source, m, 1, "Events")
	f.source.On("Events", mock.Anything, m.ID).
		Return([]insights.Event{}, ErrMisconfigured).
		Once()

	_, err := f.svc.Get(context.Background(), m, insights.Options{})
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected misconfiguration error, got %v", err)
	}
	if _, ok, _ := f.repo.Get(context.Background(), m.Key()); ok {
		t.Fatalf("expected no cache write on misconfiguration")
	}
}

func TestInsightsService_Get_InvalidInput(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	m.HomeTeamID = 0

	if _, err := f.svc.Get(context.Background(), m, insights.Options{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestInsightsService_Get_SkipsFixtureAndTrophySectionsWithoutIDs(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	m.ID = 0
	m.HomeCoachID = 0
	m.AwayCoachID = 0
	expectFanOut(f.source, m, 1, "Events", "Lineups", "Injuries", "PreMatchOdds", "LiveOdds", "Statistics")

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if got.Events == nil || got.Trophies.Home == nil || len(got.Trophies.Home) != 0 {
		t.Fatalf("expected skipped sections to be empty, got events=%v trophies=%v", got.Events, got.Trophies)
	}
	f.source.AssertNotCalled(t, "Events", mock.Anything, mock.Anything)
	f.source.AssertNotCalled(t, "Trophies", mock.Anything, mock.Anything)
}

func TestInsightsService_WarmupWithoutCoachIDsFillsTrophies(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	bare := m
	bare.HomeCoachID = 0
	bare.AwayCoachID = 0
	expectFanOut(f.source, bare, 1, "Coaches")
	f.source.On("Coaches", mock.Anything, m.HomeTeamID).
		Return([]insights.Coach{{ID: 3, Name: "Wenger"}, {ID: m.HomeCoachID, Name: "Arteta", Team: insights.TeamRef{ID: m.HomeTeamID}}}, nil).
		Once()
	f.source.On("Coaches", mock.Anything, m.AwayTeamID).
		Return([]insights.Coach{{ID: m.AwayCoachID, Name: "Howe", Team: insights.TeamRef{ID: m.AwayTeamID}}}, nil).
		Once()
	f.source.On("Trophies", mock.Anything, m.HomeCoachID).Return([]insights.Trophy{{League: "FA Cup"}}, nil).Once()
	f.source.On("Trophies", mock.Anything, m.AwayCoachID).Return([]insights.Trophy{{League: "Carabao Cup"}}, nil).Once()
	f.source.On("UpcomingFixtures", mock.Anything, m.LeagueID, m.Season, 1).
		Return([]insights.FixtureSummary{{
			ID:       m.ID,
			LeagueID: m.LeagueID,
			Season:   m.Season,
			Date:     m.KickoffAt,
			HomeTeam: insights.TeamRef{ID: m.HomeTeamID},
			AwayTeam: insights.TeamRef{ID: m.AwayTeamID},
		}}, nil).
		Once()

	warmup := NewInsightsWarmupService(f.source, f.svc, staticIDs("run-7"), InsightsWarmupConfig{Workers: 1, Next: 1})
	result, err := warmup.Run(context.Background(), WarmupRequest{Targets: []WarmupTarget{{LeagueID: m.LeagueID, Season: m.Season}}})
	if err != nil {
		t.Fatalf("run warm-up: %v", err)
	}
	if result.Warmed != 1 || result.Failed != 0 {
		t.Fatalf("expected one warmed fixture, got=%+v", result)
	}

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if len(got.Trophies.Home) != 1 || got.Trophies.Home[0].League != "FA Cup" {
		t.Fatalf("expected home trophies from the team coach, got=%+v", got.Trophies.Home)
	}
	if len(got.Trophies.Away) != 1 || got.Trophies.Away[0].League != "Carabao Cup" {
		t.Fatalf("expected away trophies from the team coach, got=%+v", got.Trophies.Away)
	}
	f.source.AssertNotCalled(t, "Trophies", mock.Anything, int64(3))
}

func TestInsightsService_Get_CoachFailureSkipsDerivedTrophies(t *testing.T) {
	t.Parallel()

	f := newInsightsFixture(t)
	m := testMatch()
	m.HomeCoachID = 0
	m.AwayCoachID = 0
	expectFanOut(f.source, m, 1, "Coaches")
	f.source.On("Coaches", mock.Anything, m.HomeTeamID).
		Return([]insights.Coach{}, errors.New("api-football coachs status=500")).
		Once()
	f.source.On("Coaches", mock.Anything, m.AwayTeamID).Return([]insights.Coach{}, nil).Once()

	got, err := f.svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if got.Trophies.Home == nil || len(got.Trophies.Home) != 0 || len(got.Trophies.Away) != 0 {
		t.Fatalf("expected empty trophies, got=%+v", got.Trophies)
	}
	f.source.AssertNotCalled(t, "Trophies", mock.Anything, mock.Anything)
}

func TestInsightsService_Get_CacheFailuresDegradeGracefully(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewMatchDataSource(t)
	repo := insightsmock.NewCacheRepository(t)
	clock := clockwork.NewFakeClock()
	svc := NewInsightsService(source, repo, &resilience.SingleFlight{}, InsightsServiceConfig{Clock: clock})

	m := testMatch()
	expectFanOut(source, m, 1)
	repo.On("Get", mock.Anything, m.Key()).
		Return(insights.CacheEntry{}, false, errors.New("corrupt entry")).
		Once()
	repo.On("Set", mock.Anything, m.Key(), mock.MatchedBy(func(e insights.CacheEntry) bool {
		return e.CachedAt.Equal(clock.Now()) && e.TTL == 24*time.Hour
	})).
		Return(errors.New("disk full")).
		Once()

	got, err := svc.Get(context.Background(), m, insights.Options{})
	if err != nil {
		t.Fatalf("expected cache failures to be swallowed, got %v", err)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("expected fresh result despite cache failures, got=%+v", got.Standings)
	}
}
