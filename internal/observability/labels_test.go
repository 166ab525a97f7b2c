package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/riskibarqy/match-insights/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

func labelConfig() config.Config {
	return config.Config{
		ServiceName:          "match-insights-api",
		ServiceVersion:       "1.4.0",
		AppEnv:               config.EnvDev,
		CacheBackend:         config.CacheBackendRedis,
		APIFootballTransport: "proxy",
		WarmupEnabled:        true,
	}
}

func TestServiceTags(t *testing.T) {
	tags := serviceTags(labelConfig())

	want := map[string]string{
		"service":            "match-insights-api",
		"version":            "1.4.0",
		"env":                config.EnvDev,
		"cache_backend":      "redis",
		"upstream_transport": "proxy",
		"warmup":             "on",
	}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got=%v", len(want), tags)
	}
	for key, value := range want {
		if tags[key] != value {
			t.Fatalf("tag %s=%q want=%q", key, tags[key], value)
		}
	}
}

func TestServiceTags_DropsEmptyValues(t *testing.T) {
	tags := serviceTags(config.Config{ServiceName: "match-insights-api"})

	if _, ok := tags["cache_backend"]; ok {
		t.Fatalf("expected empty cache backend to be dropped, got=%v", tags)
	}
	if tags["warmup"] != "off" {
		t.Fatalf("expected warmup=off, got=%q", tags["warmup"])
	}
}

func TestProfilingAppName_DefaultsToServiceName(t *testing.T) {
	cfg := labelConfig()
	if got := profilingAppName(cfg); got != "match-insights-api" {
		t.Fatalf("expected service name, got=%q", got)
	}

	cfg.PyroscopeAppName = "match-insights.staging"
	if got := profilingAppName(cfg); got != "match-insights.staging" {
		t.Fatalf("expected configured app name, got=%q", got)
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(labelConfig())

	want := []attribute.KeyValue{
		attribute.String("match_insights.cache_backend", "redis"),
		attribute.String("match_insights.upstream_transport", "proxy"),
		attribute.String("match_insights.warmup", "on"),
	}
	if len(attrs) != len(want) {
		t.Fatalf("expected %d attributes, got=%v", len(want), attrs)
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Fatalf("attribute %d=%v want=%v", i, attrs[i], want[i])
		}
	}
}

func TestWithProfileLabels(t *testing.T) {
	ctx := withProfileLabels(context.Background(), labelConfig())

	for key, want := range map[string]string{"service": "match-insights-api", "cache_backend": "redis"} {
		got, ok := pprof.Label(ctx, key)
		if !ok || got != want {
			t.Fatalf("label %s=%q ok=%v want=%q", key, got, ok, want)
		}
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got=%d", rec.Code)
	}
}
