package vault

import (
	"time"

	"github.com/google/uuid"
)

// Item is one encrypted credential record. Ciphertext holds the
// hex-encoded AES-256-CBC encryption of the password; Key and IV are the
// item's own key material, generated fresh on creation and rotated whenever
// the password changes. When KeyWrapped is set, Key holds the item key
// enveloped under the master key instead of the raw key bytes.
type Item struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"-"`
	Website    string    `json:"website"`
	Username   string    `json:"username"`
	Ciphertext string    `json:"-"`
	Key        []byte    `json:"-"`
	IV         []byte    `json:"-"`
	KeyWrapped bool      `json:"-"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DecryptedItem is the owner-facing view of an Item with the password
// recovered. It exists only in responses and is never persisted.
type DecryptedItem struct {
	ID        uuid.UUID `json:"id"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateParams carries the fields of a save-credential request.
type CreateParams struct {
	Website  string
	Username string
	Password string
	Notes    string
}

// UpdateParams carries the mutable fields of an update request. A nil field
// keeps the stored value; a non-nil Password rotates the key material.
type UpdateParams struct {
	Website  *string
	Username *string
	Password *string
	Notes    *string
}
