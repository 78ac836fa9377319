package identity

import (
	"context"
)

type Repository interface {
	// FindOrCreateByExternalID resolves an IdP subject to the internal
	// user, creating the row atomically on first contact.
	FindOrCreateByExternalID(ctx context.Context, externalID string) (*User, error)
}
