package apifootball

import (
	"strings"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
)

type statDefinition struct {
	key   string
	label string
}

// Output order follows this list.
var statAllowList = []statDefinition{
	{key: "shotsOnGoal", label: "Shots on Goal"},
	{key: "shotsOffGoal", label: "Shots off Goal"},
	{key: "totalShots", label: "Total Shots"},
	{key: "possession", label: "Ball Possession"},
	{key: "fouls", label: "Fouls"},
	{key: "corners", label: "Corner Kicks"},
	{key: "offsides", label: "Offsides"},
	{key: "yellowCards", label: "Yellow Cards"},
	{key: "redCards", label: "Red Cards"},
	{key: "goalkeeperSaves", label: "Goalkeeper Saves"},
}

var statIndexByLabel = func() map[string]int {
	out := make(map[string]int, len(statAllowList))
	for i, def := range statAllowList {
		out[strings.ToLower(def.label)] = i
	}
	return out
}()

func mapStatistics(env *Envelope[statisticsItem]) []insights.TeamStatistics {
	out := make([]insights.TeamStatistics, 0, 2)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		team := toTeamRef(item.Team)
		if team.ID <= 0 {
			continue
		}

		values := make([]*insights.StatValue, len(statAllowList))
		for _, stat := range item.Statistics {
			idx, ok := statIndexByLabel[strings.ToLower(strings.TrimSpace(stat.Type))]
			if !ok || values[idx] != nil {
				continue
			}
			value, ok := parseStatValue(stat.Value)
			if !ok {
				continue
			}
			def := statAllowList[idx]
			values[idx] = &insights.StatValue{Key: def.key, Label: def.label, Value: value}
		}

		stats := make([]insights.StatValue, 0, len(values))
		for _, value := range values {
			if value != nil {
				stats = append(stats, *value)
			}
		}
		out = append(out, insights.TeamStatistics{Team: team, Stats: stats})
	}
	return out
}

// parseStatValue reads counts and percentages; upstream reports zero counts as null.
func parseStatValue(raw any) (float64, bool) {
	if raw == nil {
		return 0, true
	}
	if text, ok := raw.(string); ok {
		raw = strings.TrimSuffix(strings.TrimSpace(text), "%")
	}
	return asFloat64(raw)
}
