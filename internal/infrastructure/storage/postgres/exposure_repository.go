package postgres

import (
	"context"
	"fmt"

	"breachvault/internal/domain/exposure"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type ExposureRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewExposureRepository(storage *Storage, log *slog.Logger) *ExposureRepository {
	return &ExposureRepository{
		pool: storage.Pool(),
		log:  log.With("component", "exposure_repository"),
	}
}

// Upsert merges email into the record's email set in one statement. The
// union is computed inside the INSERT .. ON CONFLICT update, so two racing
// exposures for the same (user, breach) pair both land — there is no
// read-then-write window to lose an update in. The set only ever grows.
func (r *ExposureRepository) Upsert(ctx context.Context, userID, breachID uuid.UUID, email string) (*exposure.Record, error) {
	const query = `
		INSERT INTO user_breaches (user_id, breach_id, compromised_emails)
		VALUES ($1, $2, ARRAY[$3::text])
		ON CONFLICT (user_id, breach_id) DO UPDATE
		SET compromised_emails = (
			SELECT array_agg(DISTINCT e)
			FROM unnest(user_breaches.compromised_emails || excluded.compromised_emails) AS e
		),
		updated_at = NOW()
		RETURNING compromised_emails`

	rec := &exposure.Record{UserID: userID, BreachID: breachID}
	err := r.pool.QueryRow(ctx, query, userID, breachID, email).Scan(&rec.CompromisedEmails)
	if err != nil {
		r.log.Error("failed to upsert exposure",
			"user_id", userID, "breach_id", breachID, "error", err)
		return nil, fmt.Errorf("upsert exposure: %w", err)
	}

	return rec, nil
}

func (r *ExposureRepository) Summary(ctx context.Context, userID uuid.UUID) ([]exposure.SummaryEntry, error) {
	const query = `
		SELECT b.id, b.normalized_name, b.breach_date, b.date_confidence, b.description,
		       b.data_types, b.pwned_count, b.created_at, ub.compromised_emails
		FROM user_breaches ub
		JOIN data_breaches b ON b.id = ub.breach_id
		WHERE ub.user_id = $1
		ORDER BY b.breach_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to load exposure summary", "user_id", userID, "error", err)
		return nil, fmt.Errorf("exposure summary: %w", err)
	}
	defer rows.Close()

	var entries []exposure.SummaryEntry
	for rows.Next() {
		var entry exposure.SummaryEntry
		err := rows.Scan(
			&entry.Breach.ID, &entry.Breach.NormalizedName, &entry.Breach.BreachDate,
			&entry.Breach.DateConfidence, &entry.Breach.Description,
			&entry.Breach.DataTypes, &entry.Breach.PwnedCount, &entry.Breach.CreatedAt,
			&entry.CompromisedEmails,
		)
		if err != nil {
			return nil, fmt.Errorf("scan summary entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
