package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-insights/internal/usecase"
)

type warmInsightsJobRequest struct {
	Targets []usecase.WarmupTarget `json:"targets" validate:"required,min=1,max=20,dive"`
	Next    int                    `json:"next" validate:"gte=0,lte=50"`
	Force   bool                   `json:"force"`
}

func (h *Handler) RunWarmInsightsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmInsightsJob")
	defer span.End()

	if h.warmupService == nil {
		writeError(ctx, w, fmt.Errorf("%w: insights warm-up is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeWarmInsightsJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.warmupService.Run(ctx, usecase.WarmupRequest{
		Targets: req.Targets,
		Next:    req.Next,
		Force:   req.Force,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run warm insights job failed", "targets", len(req.Targets), "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "warm insights job completed",
		"run_id", result.RunID,
		"fixtures", result.Fixtures,
		"warmed", result.Warmed,
		"failed", result.Failed,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeWarmInsightsJobRequest(r *http.Request) (warmInsightsJobRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, 64<<10))
	decoder.DisallowUnknownFields()

	var req warmInsightsJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return warmInsightsJobRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return warmInsightsJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
