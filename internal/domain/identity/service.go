package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Verifier authenticates a bearer token issued by the external identity
// provider and resolves its subject to an internal user ID. Tokens are only
// ever verified here, never issued — identity management stays external.
type Verifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

type Service struct {
	repo   Repository
	secret []byte
	log    *slog.Logger
}

func NewService(repo Repository, secret string, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		log:    log.With("component", "identity"),
	}
}

// Verify checks the token signature and expiry, then maps the subject claim
// to the internal user, creating it lazily on first contact.
func (s *Service) Verify(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.log.Debug("token verification failed", "error", err)
		return uuid.Nil, ErrUnauthenticated
	}

	if claims.Subject == "" {
		return uuid.Nil, ErrUnauthenticated
	}

	user, err := s.repo.FindOrCreateByExternalID(ctx, claims.Subject)
	if err != nil {
		s.log.Error("failed to resolve external identity", "error", err)
		return uuid.Nil, fmt.Errorf("resolve identity: %w", err)
	}

	return user.ID, nil
}
