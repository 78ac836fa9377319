package breach

import (
	"context"
)

type Repository interface {
	// FindByName looks up by normalized name, returning ErrNotFound on miss.
	FindByName(ctx context.Context, normalizedName string) (*DataBreach, error)
	// Create inserts a new canonical record, returning ErrDuplicate when a
	// concurrent writer already claimed the normalized name.
	Create(ctx context.Context, b *DataBreach) error
}
