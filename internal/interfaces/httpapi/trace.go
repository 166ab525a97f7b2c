package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("match-insights/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// Filtered routes such as /healthz carry no parent span.
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// matchAttributes identifies the requested match on a handler span.
func matchAttributes(match insights.Match, opts insights.Options) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("insights.cache_key", match.Key()),
		attribute.Int64("insights.league_id", match.LeagueID),
		attribute.Int64("insights.home_team_id", match.HomeTeamID),
		attribute.Int64("insights.away_team_id", match.AwayTeamID),
		attribute.Bool("insights.force_refresh", opts.ForceRefresh),
		attribute.Bool("insights.allow_stale", opts.AllowStale),
	}
	if match.ID > 0 {
		attrs = append(attrs, attribute.Int64("insights.fixture_id", match.ID))
	}
	return attrs
}
