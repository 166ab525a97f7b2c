package apifootball

import (
	"strings"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
)

const liveBookmakerName = "live"

var matchWinnerMarkets = []string{"match winner", "1x2", "fulltime result", "full time result"}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeHome
	outcomeDraw
	outcomeAway
)

// mapPreMatchOdds keeps one 1X2 summary per bookmaker that offers at least
// one usable price.
func mapPreMatchOdds(env *Envelope[oddsItem]) []insights.OddsSummary {
	out := make([]insights.OddsSummary, 0, 8)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		for _, bookmaker := range item.Bookmakers {
			summary := insights.OddsSummary{
				BookmakerID: asInt64(bookmaker.ID),
				Bookmaker:   strings.TrimSpace(bookmaker.Name),
			}
			if applyMatchWinnerBets(&summary, bookmaker.Bets) {
				out = append(out, summary)
			}
		}
	}
	return out
}

// mapLiveOdds reports in-play prices under a single live pseudo-bookmaker per
// response row, since the live feed does not name bookmakers.
func mapLiveOdds(env *Envelope[liveOddsItem]) []insights.OddsSummary {
	out := make([]insights.OddsSummary, 0, 1)
	if env == nil {
		return out
	}

	for _, item := range env.Response {
		summary := insights.OddsSummary{Bookmaker: liveBookmakerName}
		if applyMatchWinnerBets(&summary, item.Odds) {
			out = append(out, summary)
		}
	}
	return out
}

// applyMatchWinnerBets fills the first price found for each outcome and
// reports whether any price matched.
func applyMatchWinnerBets(summary *insights.OddsSummary, bets []oddsBet) bool {
	matched := false
	for _, bet := range bets {
		if !isMatchWinnerMarket(bet.Name) {
			continue
		}
		for _, value := range bet.Values {
			price, ok := parsePrice(value.Odd)
			if !ok {
				continue
			}

			var slot **float64
			switch classifyOutcome(value.Value) {
			case outcomeHome:
				slot = &summary.Home
			case outcomeDraw:
				slot = &summary.Draw
			case outcomeAway:
				slot = &summary.Away
			default:
				continue
			}
			if *slot == nil {
				p := price
				*slot = &p
				matched = true
			}
		}
	}
	return matched
}

func isMatchWinnerMarket(name string) bool {
	value := strings.ToLower(strings.TrimSpace(name))
	if value == "" {
		return false
	}
	for _, market := range matchWinnerMarkets {
		if strings.Contains(value, market) {
			return true
		}
	}
	return false
}

func classifyOutcome(label any) outcome {
	switch strings.ToLower(asString(label)) {
	case "home", "1":
		return outcomeHome
	case "draw", "x":
		return outcomeDraw
	case "away", "2":
		return outcomeAway
	default:
		return outcomeNone
	}
}

func parsePrice(value any) (float64, bool) {
	price, ok := asFloat64(value)
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}
