package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the denormalized profile of an authenticated user, sourced from
// the OAuth identity provider. This slice never mutates profile fields
// except to sync them from a fresh login.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken is a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
