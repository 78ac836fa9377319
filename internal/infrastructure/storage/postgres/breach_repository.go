package postgres

import (
	"context"
	"errors"
	"fmt"

	"breachvault/internal/domain/breach"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

// uniqueViolation is the SQLSTATE for a unique constraint conflict.
const uniqueViolation = "23505"

type BreachRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewBreachRepository(storage *Storage, log *slog.Logger) *BreachRepository {
	return &BreachRepository{
		pool: storage.Pool(),
		log:  log.With("component", "breach_repository"),
	}
}

func (r *BreachRepository) FindByName(ctx context.Context, normalizedName string) (*breach.DataBreach, error) {
	const query = `
		SELECT id, normalized_name, breach_date, date_confidence, description,
		       data_types, pwned_count, created_at
		FROM data_breaches
		WHERE normalized_name = $1`

	var b breach.DataBreach
	err := r.pool.QueryRow(ctx, query, normalizedName).Scan(
		&b.ID, &b.NormalizedName, &b.BreachDate, &b.DateConfidence,
		&b.Description, &b.DataTypes, &b.PwnedCount, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, breach.ErrNotFound
		}
		r.log.Error("failed to find breach", "name", normalizedName, "error", err)
		return nil, fmt.Errorf("find breach: %w", err)
	}

	return &b, nil
}

// Create inserts the canonical record. A unique violation on
// normalized_name means a concurrent writer won the race; the registry
// resolves it by re-reading, so it is surfaced as breach.ErrDuplicate.
func (r *BreachRepository) Create(ctx context.Context, b *breach.DataBreach) error {
	const query = `
		INSERT INTO data_breaches (id, normalized_name, breach_date, date_confidence,
		                           description, data_types, pwned_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	dataTypes := b.DataTypes
	if dataTypes == nil {
		dataTypes = []string{}
	}

	err := r.pool.QueryRow(ctx, query,
		b.ID, b.NormalizedName, b.BreachDate, b.DateConfidence,
		b.Description, dataTypes, b.PwnedCount,
	).Scan(&b.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return breach.ErrDuplicate
		}
		r.log.Error("failed to create breach", "name", b.NormalizedName, "error", err)
		return fmt.Errorf("create breach: %w", err)
	}

	return nil
}
