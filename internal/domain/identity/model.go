package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps an external identity-provider subject to the internal
// identifier that owns vault items and exposure records. Rows are created
// lazily on first authenticated contact.
type User struct {
	ID         uuid.UUID
	ExternalID string
	CreatedAt  time.Time
}
