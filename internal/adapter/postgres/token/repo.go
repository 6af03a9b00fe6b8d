// Package token implements the refresh token repository using PostgreSQL.
// Tokens are stored hashed; the plaintext never touches the database.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ideaboard/api/internal/adapter/postgres"
	"github.com/ideaboard/api/internal/domain"
)

// Repo provides refresh token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new refresh token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tokenColumns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

const createSQL = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING ` + tokenColumns

const getByHashSQL = `SELECT ` + tokenColumns + ` FROM refresh_tokens WHERE token_hash = $1`

const revokeByIDSQL = `
UPDATE refresh_tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`

const revokeAllByUserSQL = `
UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`

const deleteExpiredSQL = `DELETE FROM refresh_tokens WHERE expires_at < now() OR revoked_at IS NOT NULL`

// Create stores a new refresh token hash for a user.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, userID, tokenHash, expiresAt)

	t, err := scanToken(row)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", userID)
	}

	return t, nil
}

// GetByHash looks up a refresh token by its hash.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByHashSQL, tokenHash)

	t, err := scanToken(row)
	if err != nil {
		return nil, postgres.MapError(err, "refresh token", uuid.Nil)
	}

	return t, nil
}

// RevokeByID marks a single token revoked. Revoking an already-revoked
// token is a no-op.
func (r *Repo) RevokeByID(ctx context.Context, tokenID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeByIDSQL, tokenID); err != nil {
		return postgres.MapError(err, "refresh token", tokenID)
	}

	return nil
}

// RevokeAllByUser marks every active token of a user revoked.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "refresh token", userID)
	}

	return nil
}

// DeleteExpired removes tokens past their expiry along with revoked ones.
// Returns the number of rows removed.
func (r *Repo) DeleteExpired(ctx context.Context) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanToken(row pgx.Row) (*domain.RefreshToken, error) {
	var (
		t         domain.RefreshToken
		revokedAt pgtype.Timestamptz
	)

	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &revokedAt)
	if err != nil {
		return nil, err
	}

	if revokedAt.Valid {
		t.RevokedAt = &revokedAt.Time
	}

	return &t, nil
}
