package breach

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"breachvault/internal/app/server/api/http/middleware/auth"
	"breachvault/internal/domain/breach"
	"breachvault/internal/domain/exposure"
	"breachvault/internal/domain/ingest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, userID uuid.UUID, email string) (*ingest.CheckResult, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingest.CheckResult), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) RecordExposure(ctx context.Context, userID, breachID uuid.UUID, email string) (*exposure.Record, error) {
	args := m.Called(ctx, userID, breachID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exposure.Record), args.Error(1)
}

func (m *MockLedger) Summary(ctx context.Context, userID uuid.UUID) ([]exposure.SummaryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]exposure.SummaryEntry), args.Error(1)
}

func TestHandler_Check(t *testing.T) {
	userID := uuid.New()
	authCtx := auth.WithUserID(context.Background(), userID)

	t.Run("Success", func(t *testing.T) {
		checker := new(MockChecker)
		h := NewHandler(checker, nil, slog.Default(), nil)

		result := &ingest.CheckResult{
			Breaches: []ingest.BreachReport{
				{ID: uuid.New(), Name: "adobe", Date: "2013-01-01"},
			},
			Succeeded: 1,
		}
		checker.On("Check", mock.Anything, userID, "alice@example.com").Return(result, nil)

		input := &checkInput{}
		input.Body.Email = "alice@example.com"

		resp, err := h.check(authCtx, input)

		assert.NoError(t, err)
		assert.Equal(t, "Ok", resp.Body.Status)
		assert.Len(t, resp.Body.Breaches, 1)
		assert.Equal(t, 1, resp.Body.Succeeded)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		h := NewHandler(nil, nil, slog.Default(), nil)

		resp, err := h.check(context.Background(), &checkInput{})

		assert.Nil(t, resp)
		assert.Error(t, err)
	})

	t.Run("ErrorMapping", func(t *testing.T) {
		tests := []struct {
			name       string
			serviceErr error
			wantInBody string
		}{
			{name: "invalid email", serviceErr: ingest.ErrInvalidEmail, wantInBody: "invalid email"},
			{name: "upstream down", serviceErr: fmt.Errorf("%w: status 503", ingest.ErrUpstream), wantInBody: "oracle unavailable"},
			{name: "registry conflict", serviceErr: breach.ErrRegistry, wantInBody: "retry"},
			{name: "internal stays generic", serviceErr: errors.New("pgx: broken pipe"), wantInBody: "Internal server error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				checker := new(MockChecker)
				h := NewHandler(checker, nil, slog.Default(), nil)

				checker.On("Check", mock.Anything, userID, mock.Anything).
					Return(nil, tt.serviceErr)

				input := &checkInput{}
				input.Body.Email = "alice@example.com"

				resp, err := h.check(authCtx, input)

				assert.Nil(t, resp)
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantInBody)
				assert.NotContains(t, err.Error(), "pgx")
			})
		}
	})
}

func TestHandler_Summary(t *testing.T) {
	userID := uuid.New()
	authCtx := auth.WithUserID(context.Background(), userID)

	ledger := new(MockLedger)
	h := NewHandler(nil, ledger, slog.Default(), nil)

	entries := []exposure.SummaryEntry{
		{
			Breach: breach.DataBreach{
				ID:             uuid.New(),
				NormalizedName: "adobe",
				BreachDate:     time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			CompromisedEmails: []string{"alice@example.com"},
		},
	}
	ledger.On("Summary", mock.Anything, userID).Return(entries, nil)

	resp, err := h.summary(authCtx, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Ok", resp.Body.Status)
	assert.Len(t, resp.Body.Breaches, 1)
	assert.Equal(t, "adobe", resp.Body.Breaches[0].Breach.NormalizedName)
}
