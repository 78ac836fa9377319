package postgres

import (
	"context"
	"fmt"

	"breachvault/internal/domain/identity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(storage *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: storage.Pool(),
		log:  log.With("component", "user_repository"),
	}
}

// FindOrCreateByExternalID maps an IdP subject to the internal user row,
// creating it on first contact. The no-op DO UPDATE makes the statement
// return the row in both cases, so concurrent first contacts are safe.
func (r *UserRepository) FindOrCreateByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	const query = `
		INSERT INTO users (id, external_id)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO UPDATE SET external_id = excluded.external_id
		RETURNING id, external_id, created_at`

	var user identity.User
	err := r.pool.QueryRow(ctx, query, uuid.New(), externalID).Scan(
		&user.ID, &user.ExternalID, &user.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to resolve user", "error", err)
		return nil, fmt.Errorf("find or create user: %w", err)
	}

	return &user, nil
}
