package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riskibarqy/match-insights/external/apifootball"
	"github.com/riskibarqy/match-insights/internal/config"
	"github.com/riskibarqy/match-insights/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-insights/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/match-insights/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/match-insights/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/match-insights/internal/platform/cache"
	idgen "github.com/riskibarqy/match-insights/internal/platform/id"
	"github.com/riskibarqy/match-insights/internal/platform/logging"
	"github.com/riskibarqy/match-insights/internal/platform/resilience"
	"github.com/riskibarqy/match-insights/internal/usecase"
)

const cacheSweepInterval = 10 * time.Minute

// cacheSweeper drops entries older than the cache retention.
type cacheSweeper func(ctx context.Context) (int64, error)

// App owns the HTTP server, the optional warm-up scheduler and every
// resource opened for the cache backend.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	scheduler *WarmupScheduler

	closers  []func() error
	stopBg   context.CancelFunc
	bgDone   sync.WaitGroup
	stopOnce sync.Once
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	bgCtx, stopBg := context.WithCancel(context.Background())
	a := &App{cfg: cfg, logger: logger, stopBg: stopBg}

	kv, err := a.openCacheStore(ctx, bgCtx)
	if err != nil {
		a.release()
		return nil, err
	}

	transport, err := apifootball.ParseTransport(cfg.APIFootballTransport)
	if err != nil {
		a.release()
		return nil, fmt.Errorf("%w: %v", usecase.ErrMisconfigured, err)
	}
	baseURL := cfg.APIFootballBaseURL
	if transport == apifootball.TransportProxy {
		baseURL = cfg.APIFootballProxyBaseURL
	}

	client, err := apifootball.NewClient(apifootball.ClientConfig{
		Transport: transport,
		BaseURL:   baseURL,
		ProxyHost: cfg.APIFootballProxyHost,
		APIKey:    cfg.APIFootballKey,
		Timeout:   cfg.APIFootballTimeout,
		RateLimit: cfg.APIFootballRateLimit,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMax,
		},
	})
	if err != nil {
		a.release()
		return nil, err
	}
	source := apifootball.NewSource(client)

	insightsSvc := usecase.NewInsightsService(
		source,
		cache.NewInsightsRepository(kv),
		&resilience.SingleFlight{},
		usecase.InsightsServiceConfig{
			CacheTTL:        cfg.InsightsCacheTTL,
			HeadToHeadLimit: cfg.InsightsHeadToHeadLimit,
			Logger:          logger,
		},
	)
	warmupSvc := usecase.NewInsightsWarmupService(source, insightsSvc, idgen.NewUUIDGenerator(), usecase.InsightsWarmupConfig{
		Workers: cfg.WarmupWorkers,
		Next:    cfg.WarmupNext,
		Logger:  logger,
	})

	if cfg.WarmupEnabled {
		scheduler, err := NewWarmupScheduler(cfg.WarmupSchedule, warmupSvc, usecase.WarmupRequest{
			Targets: warmupTargets(cfg.WarmupTargets),
			Next:    cfg.WarmupNext,
		}, logger)
		if err != nil {
			a.release()
			return nil, err
		}
		a.scheduler = scheduler
	}

	handler := httpapi.NewHandler(insightsSvc, warmupSvc, logger)
	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
			CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
			InternalJobToken:    cfg.InternalJobToken,
			CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
			RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr, "cache_backend", a.cfg.CacheBackend)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}
}

// Shutdown drains HTTP requests, stops the scheduler and closes the cache backend.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		if err := a.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("shutdown http server: %w", err)
		}
		if a.scheduler != nil {
			a.scheduler.Stop(ctx)
		}
		a.release()
		a.logger.Info("http server stopped")
	})
	return shutdownErr
}

func (a *App) openCacheStore(ctx, bgCtx context.Context) (cache.KeyValueStore, error) {
	switch a.cfg.CacheBackend {
	case config.CacheBackendMemory:
		store := basecache.NewStore(a.cfg.CacheRetention)
		a.startSweeper(bgCtx, func(context.Context) (int64, error) {
			return int64(store.Sweep()), nil
		})
		return store, nil

	case config.CacheBackendRedis:
		client, err := redisrepo.Connect(ctx, redisrepo.Config{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return redisrepo.NewKVStore(client, a.cfg.CacheRetention), nil

	case config.CacheBackendPostgres:
		db, err := postgres.Open(ctx, postgres.OpenConfig{
			URL:                         a.cfg.DBURL,
			DisablePreparedBinaryResult: a.cfg.DBDisablePreparedBinary,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres cache: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		store := postgres.NewInsightsCacheStore(db)
		retention := a.cfg.CacheRetention
		a.startSweeper(bgCtx, func(ctx context.Context) (int64, error) {
			return store.PurgeOlderThan(ctx, time.Now().Add(-retention))
		})
		return store, nil

	default:
		store, err := basecache.NewFileStore(a.cfg.CacheFileDir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return store, nil
	}
}

func (a *App) startSweeper(ctx context.Context, sweep cacheSweeper) {
	a.bgDone.Add(1)
	go func() {
		defer a.bgDone.Done()

		ticker := time.NewTicker(cacheSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sweep(ctx)
				if err != nil {
					a.logger.WarnContext(ctx, "cache sweep failed", "backend", a.cfg.CacheBackend, "error", err)
					continue
				}
				if removed > 0 {
					a.logger.DebugContext(ctx, "cache swept", "backend", a.cfg.CacheBackend, "removed", removed)
				}
			}
		}
	}()
}

func (a *App) release() {
	a.stopBg()
	a.bgDone.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close resource failed", "error", err)
		}
	}
	a.closers = nil
}

func warmupTargets(in []config.WarmupTarget) []usecase.WarmupTarget {
	out := make([]usecase.WarmupTarget, 0, len(in))
	for _, target := range in {
		out = append(out, usecase.WarmupTarget{LeagueID: target.LeagueID, Season: target.Season})
	}
	return out
}
