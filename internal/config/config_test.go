package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APIFOOTBALL_KEY", "test-key")
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresAPIFootballKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APIFOOTBALL_KEY", "  ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APIFOOTBALL_KEY is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "match-insights-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.APIFootballTransport != "direct" {
		t.Fatalf("unexpected APIFootballTransport: %q", cfg.APIFootballTransport)
	}
	if cfg.InsightsCacheTTL != 24*time.Hour {
		t.Fatalf("unexpected InsightsCacheTTL: %s", cfg.InsightsCacheTTL)
	}
	if cfg.InsightsHeadToHeadLimit != 10 {
		t.Fatalf("unexpected InsightsHeadToHeadLimit: %d", cfg.InsightsHeadToHeadLimit)
	}
	if cfg.CacheBackend != CacheBackendFile {
		t.Fatalf("unexpected CacheBackend: %q", cfg.CacheBackend)
	}
	if cfg.CacheRetention != 7*24*time.Hour {
		t.Fatalf("unexpected CacheRetention: %s", cfg.CacheRetention)
	}
	if cfg.WarmupEnabled || cfg.WarmupSchedule != "@every 6h" {
		t.Fatalf("unexpected warm-up defaults: enabled=%v schedule=%q", cfg.WarmupEnabled, cfg.WarmupSchedule)
	}
	if !cfg.APIFootballCircuitEnabled || cfg.APIFootballCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults")
	}
}

func TestLoad_APIFootballTransport(t *testing.T) {
	t.Run("proxy accepted", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APIFOOTBALL_TRANSPORT", "PROXY")
		t.Setenv("APIFOOTBALL_PROXY_HOST", "example.p.rapidapi.com")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.APIFootballTransport != "proxy" {
			t.Fatalf("unexpected transport: %q", cfg.APIFootballTransport)
		}
		if cfg.APIFootballProxyHost != "example.p.rapidapi.com" {
			t.Fatalf("unexpected proxy host: %q", cfg.APIFootballProxyHost)
		}
	})

	t.Run("unknown transport rejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APIFOOTBALL_TRANSPORT", "carrier-pigeon")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown transport")
		}
	})
}

func TestLoad_CacheBackendValidation(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CACHE_BACKEND", "memcached")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown CACHE_BACKEND")
		}
	})

	t.Run("retention shorter than ttl", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("INSIGHTS_CACHE_TTL", "48h")
		t.Setenv("CACHE_RETENTION", "24h")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when retention is shorter than ttl")
		}
	})

	t.Run("redis settings", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CACHE_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_DB", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CacheBackend != CacheBackendRedis || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 2 {
			t.Fatalf("unexpected redis config: %+v", cfg)
		}
	})

	t.Run("invalid redis db", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "primary")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-numeric REDIS_DB")
		}
	})
}

func TestLoad_WarmupConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WARMUP_ENABLED", "true")
	t.Setenv("WARMUP_SCHEDULE", "0 */3 * * *")
	t.Setenv("WARMUP_TARGETS", "39:2025, 140:2025,39:2025")
	t.Setenv("WARMUP_NEXT_FIXTURES", "20")
	t.Setenv("WARMUP_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.WarmupEnabled || cfg.WarmupSchedule != "0 */3 * * *" {
		t.Fatalf("unexpected warm-up schedule config: %+v", cfg)
	}
	if len(cfg.WarmupTargets) != 2 {
		t.Fatalf("expected deduplicated targets, got=%+v", cfg.WarmupTargets)
	}
	if cfg.WarmupTargets[1] != (WarmupTarget{LeagueID: 140, Season: 2025}) {
		t.Fatalf("unexpected second target: %+v", cfg.WarmupTargets[1])
	}
	if cfg.WarmupNext != 20 || cfg.WarmupWorkers != 8 {
		t.Fatalf("unexpected warm-up sizes: next=%d workers=%d", cfg.WarmupNext, cfg.WarmupWorkers)
	}
}

func TestLoad_WarmupRequiresTargetsWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WARMUP_ENABLED", "true")
	t.Setenv("WARMUP_TARGETS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when WARMUP_ENABLED=true without targets")
	}
}

func TestParseWarmupTargets_Invalid(t *testing.T) {
	for _, raw := range []string{"39", "abc:2025", "39:season", "0:2025", "39:25"} {
		if _, err := parseWarmupTargets(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PprofEnabled {
		t.Fatalf("expected PprofEnabled=true")
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default PprofAddr=:6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_SERVICE_NAME", "insights-worker")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "insights-worker" {
		t.Fatalf("expected PyroscopeAppName to default to service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default allows all", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("csv parsing", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
			t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators rejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}
