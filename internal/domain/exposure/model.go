package exposure

import (
	"breachvault/internal/domain/breach"

	"github.com/google/uuid"
)

// Record links one user to one breach and carries the monotonically growing
// set of that user's email addresses found in it. Emails are opaque
// strings; membership is exact, no case folding.
type Record struct {
	UserID            uuid.UUID `json:"user_id"`
	BreachID          uuid.UUID `json:"breach_id"`
	CompromisedEmails []string  `json:"compromised_emails"`
}

// SummaryEntry is one row of a user's exposure report.
type SummaryEntry struct {
	Breach            breach.DataBreach `json:"breach"`
	CompromisedEmails []string          `json:"compromised_emails"`
}
