package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"breachvault/internal/domain/breach"
	"breachvault/internal/domain/exposure"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// BreachReport is one entry of a breach-check response, built from the
// canonical record rather than the raw sighting.
type BreachReport struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Description     string    `json:"description"`
	CompromisedData []string  `json:"compromised_data"`
}

// CheckResult reports the outcome of one breach check. Succeeded and Failed
// count individual sightings: a partially failed ingestion keeps the work
// already committed and says so, instead of claiming total success or total
// failure.
type CheckResult struct {
	Breaches  []BreachReport `json:"breaches"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// Servicer drives the breach-check workflow: fetch sightings from the
// oracle, canonicalize each breach, record the exposure, assemble the
// response.
type Servicer interface {
	Check(ctx context.Context, userID uuid.UUID, email string) (*CheckResult, error)
}

type Checker struct {
	fetcher  Fetcher
	registry breach.Servicer
	ledger   exposure.Servicer
	log      *slog.Logger
}

func NewChecker(fetcher Fetcher, registry breach.Servicer, ledger exposure.Servicer, log *slog.Logger) *Checker {
	return &Checker{
		fetcher:  fetcher,
		registry: registry,
		ledger:   ledger,
		log:      log.With("component", "breach_checker"),
	}
}

// Check looks up email against the oracle and ingests every reported
// sighting. Sightings are independent: a failure on one is counted and the
// loop moves on, never rolling back breaches already recorded. Cancellation
// stops before the next sighting's writes; committed work stays committed.
func (c *Checker) Check(ctx context.Context, userID uuid.UUID, email string) (*CheckResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	sightings, err := c.fetcher.BreachesForEmail(ctx, email)
	if err != nil {
		c.log.Error("breach oracle lookup failed", "error", err)
		return nil, fmt.Errorf("fetch sightings: %w", err)
	}

	result := &CheckResult{Breaches: []BreachReport{}}
	for i, sighting := range sightings {
		if ctx.Err() != nil {
			result.Failed += len(sightings) - i
			c.log.Warn("breach check cancelled mid-ingestion",
				"user_id", userID, "succeeded", result.Succeeded, "remaining", len(sightings)-i)
			break
		}

		name := strings.TrimSpace(sighting.Name)
		if name == "" {
			result.Failed++
			c.log.Warn("skipping sighting with empty breach name")
			continue
		}

		b, err := c.registry.FindOrCreate(ctx, name, breach.Meta{
			Date:        sighting.Date,
			Description: sighting.Description,
			DataTypes:   splitCategories(sighting.DataTypes),
			PwnedCount:  sighting.Records,
		})
		if err != nil {
			result.Failed++
			c.log.Error("failed to canonicalize breach", "name", name, "error", err)
			continue
		}

		if _, err := c.ledger.RecordExposure(ctx, userID, b.ID, email); err != nil {
			result.Failed++
			c.log.Error("failed to record exposure",
				"user_id", userID, "breach_id", b.ID, "error", err)
			continue
		}

		categories := b.DataTypes
		if categories == nil {
			categories = []string{}
		}

		result.Succeeded++
		result.Breaches = append(result.Breaches, BreachReport{
			ID:              b.ID,
			Name:            name,
			Date:            b.BreachDate.Format("2006-01-02"),
			Description:     b.Description,
			CompromisedData: categories,
		})
	}

	if result.Failed > 0 {
		c.log.Warn("breach check completed partially",
			"user_id", userID, "succeeded", result.Succeeded, "failed", result.Failed)
	}

	return result, nil
}
