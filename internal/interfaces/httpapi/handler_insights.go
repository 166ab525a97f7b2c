package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"github.com/riskibarqy/match-insights/internal/usecase"
)

type matchInsightsQuery struct {
	MatchID      int64  `validate:"gte=0"`
	LeagueID     int64  `validate:"required,gt=0"`
	Season       int    `validate:"omitempty,gt=1900"`
	HomeTeamID   int64  `validate:"required,gt=0"`
	AwayTeamID   int64  `validate:"required,gt=0,nefield=HomeTeamID"`
	HomeCoachID  int64  `validate:"gte=0"`
	AwayCoachID  int64  `validate:"gte=0"`
	KickoffAt    string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ForceRefresh bool
	AllowStale   bool
}

func (h *Handler) GetMatchInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchInsights")
	defer span.End()

	query, err := parseMatchInsightsQuery(r.PathValue("matchID"), r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	match := insights.Match{
		ID:          query.MatchID,
		LeagueID:    query.LeagueID,
		Season:      query.Season,
		HomeTeamID:  query.HomeTeamID,
		AwayTeamID:  query.AwayTeamID,
		HomeCoachID: query.HomeCoachID,
		AwayCoachID: query.AwayCoachID,
	}
	if query.KickoffAt != "" {
		kickoff, err := time.Parse(time.RFC3339, query.KickoffAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid kickoff_at: %v", usecase.ErrInvalidInput, err))
			return
		}
		match.KickoffAt = kickoff.UTC()
	}

	opts := insights.Options{
		ForceRefresh: query.ForceRefresh,
		AllowStale:   query.AllowStale,
	}
	span.SetAttributes(matchAttributes(match, opts)...)

	composite, err := h.insightsService.Get(ctx, match, opts)
	if err != nil {
		h.logger.ErrorContext(ctx, "get match insights failed", "match_id", match.ID, "league_id", match.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, composite)
}

func parseMatchInsightsQuery(rawMatchID string, values url.Values) (matchInsightsQuery, error) {
	var (
		query matchInsightsQuery
		err   error
	)

	if query.MatchID, err = parseInt64Param("matchID", rawMatchID); err != nil {
		return matchInsightsQuery{}, err
	}
	if query.LeagueID, err = parseInt64Param("league_id", values.Get("league_id")); err != nil {
		return matchInsightsQuery{}, err
	}
	season, err := parseInt64Param("season", values.Get("season"))
	if err != nil {
		return matchInsightsQuery{}, err
	}
	query.Season = int(season)
	if query.HomeTeamID, err = parseInt64Param("home_team_id", values.Get("home_team_id")); err != nil {
		return matchInsightsQuery{}, err
	}
	if query.AwayTeamID, err = parseInt64Param("away_team_id", values.Get("away_team_id")); err != nil {
		return matchInsightsQuery{}, err
	}
	if query.HomeCoachID, err = parseInt64Param("home_coach_id", values.Get("home_coach_id")); err != nil {
		return matchInsightsQuery{}, err
	}
	if query.AwayCoachID, err = parseInt64Param("away_coach_id", values.Get("away_coach_id")); err != nil {
		return matchInsightsQuery{}, err
	}
	query.KickoffAt = strings.TrimSpace(values.Get("kickoff_at"))
	if query.ForceRefresh, err = parseBoolParam("force_refresh", values.Get("force_refresh")); err != nil {
		return matchInsightsQuery{}, err
	}
	if query.AllowStale, err = parseBoolParam("allow_stale", values.Get("allow_stale")); err != nil {
		return matchInsightsQuery{}, err
	}
	return query, nil
}

// Empty values parse as zero and are left to validation.
func parseInt64Param(name, raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return out, nil
}

func parseBoolParam(name, raw string) (bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return false, nil
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return out, nil
}
