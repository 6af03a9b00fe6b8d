package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/domain"
)

var _ oauthVerifier = &verifierMock{}

type verifierMock struct {
	AuthURLFunc    func(state string) string
	VerifyCodeFunc func(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

func (m *verifierMock) AuthURL(state string) string {
	return m.AuthURLFunc(state)
}

func (m *verifierMock) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	return m.VerifyCodeFunc(ctx, code)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByProviderIDFunc func(ctx context.Context, providerID string) (*domain.User, error)
	CreateFunc          func(ctx context.Context, u *domain.User, providerID string) (*domain.User, error)
	UpdateProfileFunc   func(ctx context.Context, id uuid.UUID, name, avatarURL *string) (*domain.User, error)

	createCalls int
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByProviderID(ctx context.Context, providerID string) (*domain.User, error) {
	return m.GetByProviderIDFunc(ctx, providerID)
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User, providerID string) (*domain.User, error) {
	m.createCalls++
	return m.CreateFunc(ctx, u, providerID)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, id uuid.UUID, name, avatarURL *string) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, id, name, avatarURL)
}

var _ tokenRepo = &tokenRepoMock{}

// tokenRepoMock stores refresh tokens in memory so rotation tests can track
// revocations across calls.
type tokenRepoMock struct {
	byHash map[string]*domain.RefreshToken

	revokeAllCalls int
}

func newTokenRepoMock() *tokenRepoMock {
	return &tokenRepoMock{byHash: map[string]*domain.RefreshToken{}}
}

func (m *tokenRepoMock) Create(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	t := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.byHash[tokenHash] = t
	return t, nil
}

func (m *tokenRepoMock) GetByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	t, ok := m.byHash[tokenHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *tokenRepoMock) RevokeByID(_ context.Context, tokenID uuid.UUID) error {
	now := time.Now()
	for _, t := range m.byHash {
		if t.ID == tokenID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *tokenRepoMock) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	m.revokeAllCalls++
	now := time.Now()
	for _, t := range m.byHash {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}
