package apifootball

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
)

func asFloat64(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, !math.IsNaN(typed) && !math.IsInf(typed, 0)
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asInt(value any) int {
	parsed, ok := asFloat64(value)
	if !ok {
		return 0
	}
	return int(parsed)
}

func asInt64(value any) int64 {
	parsed, ok := asFloat64(value)
	if !ok {
		return 0
	}
	return int64(parsed)
}

func asString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		parsed, ok := asFloat64(typed)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(parsed, 'f', -1, 64)
	}
}

func asBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(typed))
		return parsed
	default:
		return asInt(typed) != 0
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func ptrInt(value int) *int {
	v := value
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func toTeamRef(team *teamPayload) insights.TeamRef {
	if team == nil {
		return insights.TeamRef{}
	}
	return insights.TeamRef{
		ID:   asInt64(team.ID),
		Name: strings.TrimSpace(team.Name),
		Logo: strings.TrimSpace(team.Logo),
	}
}

func parseProviderDateTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
