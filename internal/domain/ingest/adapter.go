package ingest

import (
	"context"
	"strings"
)

// Sighting is one breach report returned by the external oracle for a
// checked email. Every field is untrusted input: anything may be missing
// or malformed and must degrade to a zero value, never a crash.
type Sighting struct {
	Name        string // reported breach name, required; blank sightings are skipped
	Date        string // usually a bare 4-digit year
	Description string
	DataTypes   string // semicolon-delimited category list, e.g. "Emails;Passwords"
	Records     *int64
}

// Fetcher is the external collaborator contract for the breach oracle.
// An email with no known exposure yields an empty slice and nil error;
// transport failures and unparseable payloads yield ErrUpstream.
type Fetcher interface {
	BreachesForEmail(ctx context.Context, email string) ([]Sighting, error)
}

// splitCategories turns the oracle's semicolon-delimited category string
// into a clean slice, dropping empty segments.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}

	var categories []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}
