package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-insights/internal/domain/insights"
	"github.com/riskibarqy/match-insights/internal/platform/logging"
	"github.com/riskibarqy/match-insights/internal/usecase"
)

// InsightsReader serves match insights; *usecase.InsightsService satisfies it.
type InsightsReader interface {
	Get(ctx context.Context, match insights.Match, opts insights.Options) (insights.Composite, error)
}

// WarmupRunner runs one insights warm-up; *usecase.InsightsWarmupService satisfies it.
type WarmupRunner interface {
	Run(ctx context.Context, req usecase.WarmupRequest) (usecase.WarmupResult, error)
}

type Handler struct {
	insightsService InsightsReader
	warmupService   WarmupRunner
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(insightsService InsightsReader, warmupService WarmupRunner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		insightsService: insightsService,
		warmupService:   warmupService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
