package breach

import (
	"context"
	"errors"

	"breachvault/internal/app/server/api/http/middleware/auth"
	"breachvault/internal/domain/breach"
	"breachvault/internal/domain/exposure"
	"breachvault/internal/domain/ingest"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	checker    ingest.Servicer
	ledger     exposure.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(checker ingest.Servicer, ledger exposure.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		checker:    checker,
		ledger:     ledger,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkOp(), h.check)
	huma.Register(api, h.summaryOp(), h.summary)
}

func (h *Handler) check(ctx context.Context, input *checkInput) (*checkOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result, err := h.checker.Check(ctx, userID, input.Body.Email)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &checkOutput{
		Body: checkResponse{
			Status:      "Ok",
			CheckResult: *result,
		},
	}, nil
}

func (h *Handler) summary(ctx context.Context, _ *struct{}) (*summaryOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.ledger.Summary(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &summaryOutput{
		Body: summaryResponse{
			Status:   "Ok",
			Breaches: entries,
		},
	}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, ingest.ErrInvalidEmail), errors.Is(err, exposure.ErrInvalidEmail):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, breach.ErrRegistry):
		return huma.Error409Conflict("Breach registry conflict, retry the request")
	case errors.Is(err, ingest.ErrUpstream):
		return huma.Error502BadGateway("Breach oracle unavailable")
	default:
		h.log.Error("breach operation failed", "error", err)
		return huma.Error500InternalServerError("Internal server error")
	}
}
