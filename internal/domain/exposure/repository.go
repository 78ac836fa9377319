package exposure

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert adds email to the (userID, breachID) record's email set in a
	// single atomic statement — the union must happen at the storage layer
	// so that concurrent exposures cannot overwrite each other.
	Upsert(ctx context.Context, userID, breachID uuid.UUID, email string) (*Record, error)
	Summary(ctx context.Context, userID uuid.UUID) ([]SummaryEntry, error)
}
