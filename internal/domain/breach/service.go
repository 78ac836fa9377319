package breach

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// findOrCreateAttempts bounds the lookup-create-reread loop. Exceeding it
// means the unique index claims a row exists that reads cannot see.
const findOrCreateAttempts = 3

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Normalize canonicalizes an externally supplied breach name: surrounding
// whitespace trimmed, lowercased. "Adobe " and "ADOBE" map to "adobe".
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Servicer maps arbitrary reported breach names to exactly one canonical
// DataBreach record each, safe under concurrent first-sightings.
type Servicer interface {
	FindOrCreate(ctx context.Context, name string, meta Meta) (*DataBreach, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "breach_registry"),
		now:  time.Now,
	}
}

// FindOrCreate returns the canonical record for name, creating it from meta
// on first sighting. When a concurrent writer wins the creation race the
// existing row is re-read and returned; the loser's metadata is discarded,
// canonical records never mutate after creation.
func (s *Service) FindOrCreate(ctx context.Context, name string, meta Meta) (*DataBreach, error) {
	normalized := Normalize(name)
	if normalized == "" {
		return nil, ErrInvalidName
	}

	for attempt := 1; attempt <= findOrCreateAttempts; attempt++ {
		existing, err := s.repo.FindByName(ctx, normalized)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to look up breach", "name", normalized, "error", err)
			return nil, fmt.Errorf("find breach: %w", err)
		}

		date, confidence := s.parseDate(meta.Date)
		candidate := &DataBreach{
			ID:             uuid.New(),
			NormalizedName: normalized,
			BreachDate:     date,
			DateConfidence: confidence,
			Description:    meta.Description,
			DataTypes:      meta.DataTypes,
			PwnedCount:     meta.PwnedCount,
		}

		err = s.repo.Create(ctx, candidate)
		if err == nil {
			s.log.Info("breach registered", "breach_id", candidate.ID, "name", normalized)
			return candidate, nil
		}
		if !errors.Is(err, ErrDuplicate) {
			s.log.Error("failed to create breach", "name", normalized, "error", err)
			return nil, fmt.Errorf("create breach: %w", err)
		}

		s.log.Debug("lost breach creation race, re-reading existing record",
			"name", normalized, "attempt", attempt)
	}

	s.log.Error("breach unreadable after creation conflict", "name", normalized)
	return nil, fmt.Errorf("%w: %q not readable after %d attempts",
		ErrRegistry, normalized, findOrCreateAttempts)
}

// parseDate applies the registry date policy: a bare 4-digit year becomes
// January 1 of that year (UTC); any other shape is unknown and falls back
// to ingestion time, flagged as low confidence.
func (s *Service) parseDate(raw string) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if yearPattern.MatchString(raw) {
		year, err := strconv.Atoi(raw)
		if err == nil {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), DateConfidenceYear
		}
	}

	if raw != "" {
		s.log.Debug("unparseable breach date, falling back to now", "raw", raw)
	}
	return s.now(), DateConfidenceUnknown
}
