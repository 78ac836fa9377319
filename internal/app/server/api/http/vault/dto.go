package vault

import (
	"breachvault/internal/domain/vault"

	"github.com/google/uuid"
)

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Website  string `json:"website" doc:"Site or service the credential belongs to" minLength:"1"`
	Username string `json:"username" doc:"Login name" minLength:"1"`
	Password string `json:"password" doc:"Password to encrypt at rest" minLength:"1"`
	Notes    string `json:"notes,omitempty" doc:"Free-form notes"`
}

// createResponse returns item metadata only. The password is never echoed
// back on creation.
type createResponse struct {
	Status string      `json:"status"`
	Item   *vault.Item `json:"item,omitempty"`
}

type createOutput struct {
	Body createResponse
}

type listResponse struct {
	Status string                `json:"status"`
	Items  []vault.DecryptedItem `json:"items"`
}

type listOutput struct {
	Body listResponse
}

type updateInput struct {
	ID   uuid.UUID `path:"id" doc:"Item ID"`
	Body updateRequest
}

type updateRequest struct {
	Website  *string `json:"website,omitempty" doc:"New website"`
	Username *string `json:"username,omitempty" doc:"New username"`
	Password *string `json:"password,omitempty" doc:"New password, rotates key material"`
	Notes    *string `json:"notes,omitempty" doc:"New notes"`
}

type deleteInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

type response struct {
	ID     uuid.UUID `json:"id,omitempty"`
	Status string    `json:"status"`
}

type output struct {
	Body response
}
