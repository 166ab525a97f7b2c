package observability

import (
	"context"
	"runtime/pprof"
	"sort"
	"strings"

	"github.com/riskibarqy/match-insights/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

// serviceTags describes the running insights service for profiles and traces.
// Empty values are dropped.
func serviceTags(cfg config.Config) map[string]string {
	warmup := "off"
	if cfg.WarmupEnabled {
		warmup = "on"
	}
	tags := map[string]string{
		"service":            cfg.ServiceName,
		"version":            cfg.ServiceVersion,
		"env":                cfg.AppEnv,
		"cache_backend":      cfg.CacheBackend,
		"upstream_transport": cfg.APIFootballTransport,
		"warmup":             warmup,
	}
	for key, value := range tags {
		if strings.TrimSpace(value) == "" {
			delete(tags, key)
		}
	}
	return tags
}

func profilingAppName(cfg config.Config) string {
	if name := strings.TrimSpace(cfg.PyroscopeAppName); name != "" {
		return name
	}
	return cfg.ServiceName
}

// resourceAttributes maps the service tags that are not already covered by
// the standard service.* resource keys.
func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	tags := serviceTags(cfg)
	attrs := make([]attribute.KeyValue, 0, 3)
	for _, key := range []string{"cache_backend", "upstream_transport", "warmup"} {
		if value, ok := tags[key]; ok {
			attrs = append(attrs, attribute.String("match_insights."+key, value))
		}
	}
	return attrs
}

// withProfileLabels attaches the service tags as runtime/pprof labels so
// goroutines started from the returned context carry them in profiles.
func withProfileLabels(ctx context.Context, cfg config.Config) context.Context {
	tags := serviceTags(cfg)
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, tags[key])
	}
	return pprof.WithLabels(ctx, pprof.Labels(pairs...))
}
