package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "vault-create",
		Method:        http.MethodPost,
		Path:          "/api/vault",
		DefaultStatus: http.StatusCreated,
		Summary:       "Save a credential",
		Description:   "Encrypts the password with fresh per-item key material and stores the item.",
		Tags:          []string{"vault"},
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-list",
		Method:      http.MethodGet,
		Path:        "/api/vault",
		Summary:     "List credentials",
		Description: "Returns the caller's credentials with passwords decrypted.",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-update",
		Method:      http.MethodPut,
		Path:        "/api/vault/{id}",
		Summary:     "Update a credential",
		Description: "Updates the given fields. A new password re-encrypts the item under fresh key material.",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-delete",
		Method:      http.MethodDelete,
		Path:        "/api/vault/{id}",
		Summary:     "Delete a credential",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
