package vault

import (
	"context"
	"errors"

	"breachvault/internal/app/server/api/http/middleware/auth"
	"breachvault/internal/domain/vault"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	item, err := h.service.Create(ctx, userID, vault.CreateParams{
		Website:  input.Body.Website,
		Username: input.Body.Username,
		Password: input.Body.Password,
		Notes:    input.Body.Notes,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &createOutput{
		Body: createResponse{
			Status: "Ok",
			Item:   item,
		},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{
		Body: listResponse{
			Status: "Ok",
			Items:  items,
		},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.Update(ctx, input.ID, userID, vault.UpdateParams{
		Website:  input.Body.Website,
		Username: input.Body.Username,
		Password: input.Body.Password,
		Notes:    input.Body.Notes,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &output{
		Body: response{
			ID:     input.ID,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.ID, userID); err != nil {
		return nil, h.mapError(err)
	}

	return &output{
		Body: response{
			ID:     input.ID,
			Status: "Ok",
		},
	}, nil
}

// mapError translates domain errors to HTTP statuses. Internal failures
// come back as a generic 500 so nothing about stored key material or
// ciphertext shows up in responses.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, vault.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, vault.ErrForbidden):
		return huma.Error403Forbidden("Forbidden")
	case errors.Is(err, vault.ErrNotFound):
		return huma.Error404NotFound("Not found")
	default:
		h.log.Error("vault operation failed", "error", err)
		return huma.Error500InternalServerError("Internal server error")
	}
}
