// Package auth implements login via Google OAuth, refresh token rotation,
// and session teardown.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/domain"
)

type oauthVerifier interface {
	AuthURL(state string) string
	VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User, providerID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, avatarURL *string) (*domain.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// Service provides authentication operations.
type Service struct {
	verifier   oauthVerifier
	users      userRepo
	tokens     tokenRepo
	jwt        tokenIssuer
	refreshTTL time.Duration
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new auth service.
func NewService(
	log *slog.Logger,
	verifier oauthVerifier,
	users userRepo,
	tokens tokenRepo,
	jwt tokenIssuer,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		verifier:   verifier,
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		log:        log.With("service", "auth"),
		now:        time.Now,
	}
}

// TokenPair is an access token plus the raw refresh token that renews it.
// The refresh token is shown to the client exactly once; only its hash is
// stored.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	raw, hash, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if _, err := s.tokens.Create(ctx, userID, hash, s.now().Add(s.refreshTTL)); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: raw}, nil
}
