package exposure

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer maintains, per user and per breach, the monotonic set of that
// user's compromised email addresses.
type Servicer interface {
	RecordExposure(ctx context.Context, userID, breachID uuid.UUID, email string) (*Record, error)
	Summary(ctx context.Context, userID uuid.UUID) ([]SummaryEntry, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "exposure_ledger"),
	}
}

// RecordExposure adds email to the user's set for the breach. Idempotent:
// recording the same email twice leaves the set unchanged. The union is a
// single storage-level upsert, so two racing exposures both land.
func (s *Service) RecordExposure(ctx context.Context, userID, breachID uuid.UUID, email string) (*Record, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}

	rec, err := s.repo.Upsert(ctx, userID, breachID, email)
	if err != nil {
		s.log.Error("failed to record exposure",
			"user_id", userID, "breach_id", breachID, "error", err)
		return nil, fmt.Errorf("record exposure: %w", err)
	}

	s.log.Debug("exposure recorded",
		"user_id", userID, "breach_id", breachID, "emails", len(rec.CompromisedEmails))
	return rec, nil
}

// Summary returns the user's full exposure report. Read-only.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) ([]SummaryEntry, error) {
	entries, err := s.repo.Summary(ctx, userID)
	if err != nil {
		s.log.Error("failed to load exposure summary", "user_id", userID, "error", err)
		return nil, fmt.Errorf("exposure summary: %w", err)
	}

	return entries, nil
}
