package postgres

import (
	"context"
	"errors"
	"fmt"

	"breachvault/internal/domain/vault"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type VaultRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewVaultRepository(storage *Storage, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		pool: storage.Pool(),
		log:  log.With("component", "vault_repository"),
	}
}

func (r *VaultRepository) Create(ctx context.Context, item *vault.Item) error {
	const query = `
		INSERT INTO vault_items (id, owner_id, website, username, ciphertext, enc_key, iv, key_wrapped, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.OwnerID, item.Website, item.Username,
		item.Ciphertext, item.Key, item.IV, item.KeyWrapped, item.Notes,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		r.log.Error("failed to create vault item", "owner_id", item.OwnerID, "error", err)
		return fmt.Errorf("create vault item: %w", err)
	}

	return nil
}

func (r *VaultRepository) Get(ctx context.Context, id uuid.UUID) (*vault.Item, error) {
	const query = `
		SELECT id, owner_id, website, username, ciphertext, enc_key, iv, key_wrapped, notes,
		       created_at, updated_at
		FROM vault_items
		WHERE id = $1`

	item, err := r.scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vault.ErrNotFound
		}
		r.log.Error("failed to get vault item", "item_id", id, "error", err)
		return nil, fmt.Errorf("get vault item: %w", err)
	}

	return item, nil
}

func (r *VaultRepository) List(ctx context.Context, ownerID uuid.UUID) ([]vault.Item, error) {
	const query = `
		SELECT id, owner_id, website, username, ciphertext, enc_key, iv, key_wrapped, notes,
		       created_at, updated_at
		FROM vault_items
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("failed to list vault items", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list vault items: %w", err)
	}
	defer rows.Close()

	var items []vault.Item
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vault item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *VaultRepository) Update(ctx context.Context, item *vault.Item) error {
	const query = `
		UPDATE vault_items
		SET website = $1, username = $2, ciphertext = $3, enc_key = $4, iv = $5,
			key_wrapped = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.Website, item.Username, item.Ciphertext, item.Key, item.IV,
		item.KeyWrapped, item.Notes, item.ID, item.OwnerID,
	).Scan(&item.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vault.ErrNotFound
		}
		r.log.Error("failed to update vault item", "item_id", item.ID, "error", err)
		return fmt.Errorf("update vault item: %w", err)
	}

	return nil
}

func (r *VaultRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM vault_items WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete vault item", "item_id", id, "error", err)
		return fmt.Errorf("delete vault item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return vault.ErrNotFound
	}

	return nil
}

func (r *VaultRepository) scanItem(row pgx.Row) (*vault.Item, error) {
	var item vault.Item

	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Website, &item.Username,
		&item.Ciphertext, &item.Key, &item.IV, &item.KeyWrapped, &item.Notes,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
