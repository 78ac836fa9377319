package breach

import (
	"time"

	"github.com/google/uuid"
)

// Date confidence levels recorded alongside BreachDate. The oracle usually
// reports only a year; anything less parseable falls back to ingestion time.
const (
	DateConfidenceYear    = "year"
	DateConfidenceUnknown = "unknown"
)

// DataBreach is the canonical, deduplicated record of one real-world
// breach, shared across all users and keyed by NormalizedName. Rows are
// immutable once created and are never deleted.
type DataBreach struct {
	ID             uuid.UUID `json:"id"`
	NormalizedName string    `json:"name"`
	BreachDate     time.Time `json:"breach_date"`
	DateConfidence string    `json:"date_confidence"`
	Description    string    `json:"description"`
	DataTypes      []string  `json:"data_types"`
	PwnedCount     *int64    `json:"pwned_count,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Meta is the externally reported metadata accompanying a first sighting.
// All fields are untrusted and may be empty.
type Meta struct {
	Date        string // raw reported date, usually a bare 4-digit year
	Description string
	DataTypes   []string
	PwnedCount  *int64
}
