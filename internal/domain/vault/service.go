package vault

import (
	"context"
	"errors"
	"fmt"

	"breachvault/internal/app/server/crypto"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for vault item operations
type Servicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Item, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]DecryptedItem, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, params UpdateParams) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type Service struct {
	repo    Repository
	wrapper *crypto.KeyWrapper
	log     *slog.Logger
}

// NewService creates a new vault service. wrapper may be nil, in which case
// item keys are stored unwrapped next to their ciphertext.
func NewService(repo Repository, wrapper *crypto.KeyWrapper, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		wrapper: wrapper,
		log:     log.With("component", "vault_service"),
	}
}

// Create encrypts the password under fresh key material and persists the
// item. The returned Item never carries the plaintext password.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Item, error) {
	if params.Website == "" || params.Username == "" || params.Password == "" {
		return nil, fmt.Errorf("%w: website, username and password are required", ErrInvalidInput)
	}

	item := &Item{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Website:  params.Website,
		Username: params.Username,
		Notes:    params.Notes,
	}

	if err := s.seal(item, params.Password); err != nil {
		s.log.Error("failed to encrypt vault item", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("encrypt item: %w", err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error("failed to create vault item", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("vault item created", "item_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// List returns the owner's items with passwords decrypted. An item whose
// ciphertext no longer decrypts is logged and skipped; one corrupt row must
// not take down the whole listing.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]DecryptedItem, error) {
	items, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list vault items", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list items: %w", err)
	}

	decrypted := make([]DecryptedItem, 0, len(items))
	for _, item := range items {
		password, err := s.open(&item)
		if err != nil {
			s.log.Error("failed to decrypt vault item, skipping",
				"item_id", item.ID, "owner_id", ownerID, "error", err)
			continue
		}

		decrypted = append(decrypted, DecryptedItem{
			ID:        item.ID,
			Website:   item.Website,
			Username:  item.Username,
			Password:  password,
			Notes:     item.Notes,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}

	return decrypted, nil
}

// Update mutates an item in place after an explicit ownership check. A new
// password re-encrypts under freshly generated key material.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, params UpdateParams) error {
	item, err := s.authorize(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if params.Website != nil {
		item.Website = *params.Website
	}
	if params.Username != nil {
		item.Username = *params.Username
	}
	if params.Notes != nil {
		item.Notes = *params.Notes
	}
	if params.Password != nil {
		if *params.Password == "" {
			return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
		}
		if err := s.seal(item, *params.Password); err != nil {
			s.log.Error("failed to re-encrypt vault item", "item_id", id, "error", err)
			return fmt.Errorf("encrypt item: %w", err)
		}
	}

	if err := s.repo.Update(ctx, item); err != nil {
		s.log.Error("failed to update vault item", "item_id", id, "owner_id", ownerID, "error", err)
		return fmt.Errorf("update item: %w", err)
	}

	s.log.Info("vault item updated", "item_id", id, "owner_id", ownerID)
	return nil
}

// Delete removes an item permanently, same ownership discipline as Update.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.authorize(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete vault item", "item_id", id, "owner_id", ownerID, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("vault item deleted", "item_id", id, "owner_id", ownerID)
	return nil
}

// authorize loads the item and distinguishes "does not exist" from "exists
// but not yours". Matching on id alone would let one user mutate another's
// records.
func (s *Service) authorize(ctx context.Context, id, ownerID uuid.UUID) (*Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get vault item", "item_id", id, "error", err)
		return nil, fmt.Errorf("get item: %w", err)
	}

	if item.OwnerID != ownerID {
		s.log.Warn("ownership check failed", "item_id", id, "owner_id", ownerID)
		return nil, ErrForbidden
	}

	return item, nil
}

// seal encrypts password under fresh key material and installs ciphertext,
// key and iv on the item, wrapping the key when a master key is configured.
func (s *Service) seal(item *Item, password string) error {
	key, iv, err := crypto.GenerateKeyMaterial()
	if err != nil {
		return err
	}

	ciphertext, err := crypto.Encrypt(password, key, iv)
	if err != nil {
		return err
	}

	storedKey := key
	wrapped := false
	if s.wrapper != nil {
		if storedKey, err = s.wrapper.Wrap(key); err != nil {
			return err
		}
		wrapped = true
	}

	item.Ciphertext = ciphertext
	item.Key = storedKey
	item.IV = iv
	item.KeyWrapped = wrapped
	return nil
}

func (s *Service) open(item *Item) (string, error) {
	key := item.Key
	if item.KeyWrapped {
		if s.wrapper == nil {
			return "", fmt.Errorf("%w: item key is wrapped but no master key is configured", crypto.ErrCrypto)
		}
		var err error
		if key, err = s.wrapper.Unwrap(item.Key); err != nil {
			return "", err
		}
	}

	return crypto.Decrypt(item.Ciphertext, key, item.IV)
}
