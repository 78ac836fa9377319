package vault

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	// Get fetches by id alone so the service can tell "absent" apart from
	// "exists but owned by someone else".
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
