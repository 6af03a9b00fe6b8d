// Package profile implements the user profile repository using PostgreSQL.
// Profiles are denormalized from the OAuth identity provider at login time
// and read back during view assembly.
package profile

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

// Repo provides user profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, name, avatar_url, created_at, updated_at`

const getByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const getByProviderIDSQL = `SELECT ` + userColumns + ` FROM users WHERE provider_id = $1`

const getByIDsSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1::uuid[])`

const createSQL = `
INSERT INTO users (email, name, avatar_url, provider_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

const updateProfileSQL = `
UPDATE users SET name = $2, avatar_url = $3, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

// GetByID returns a user by primary key.
// Returns domain.ErrNotFound if no profile exists for the id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// GetByProviderID returns a user by the OAuth provider's subject id.
func (r *Repo) GetByProviderID(ctx context.Context, providerID string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByProviderIDSQL, providerID))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// GetByIDs returns profiles for multiple user ids (batch for the view
// assembler's profile loader). Missing ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		u, err := scanUserFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("get users by ids: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	return result, nil
}

// Create inserts a new user and returns the persisted domain.User.
// Returns domain.ErrAlreadyExists on email or provider id collision.
func (r *Repo) Create(ctx context.Context, u *domain.User, providerID string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanUser(querier.QueryRow(ctx, createSQL,
		u.Email, ptrToPgText(u.Name), ptrToPgText(u.AvatarURL), providerID))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return created, nil
}

// UpdateProfile syncs name and avatar_url from a fresh OAuth login.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, name, avatarURL *string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, updateProfileSQL, id, ptrToPgText(name), ptrToPgText(avatarURL)))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id        uuid.UUID
		email     string
		name      pgtype.Text
		avatarURL pgtype.Text
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &email, &name, &avatarURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	u := buildUser(id, email, name, avatarURL, createdAt, updatedAt)
	return &u, nil
}

func scanUserFromRows(rows pgx.Rows) (domain.User, error) {
	var (
		id        uuid.UUID
		email     string
		name      pgtype.Text
		avatarURL pgtype.Text
		createdAt time.Time
		updatedAt time.Time
	)

	if err := rows.Scan(&id, &email, &name, &avatarURL, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}

	return buildUser(id, email, name, avatarURL, createdAt, updatedAt), nil
}

func buildUser(id uuid.UUID, email string, name, avatarURL pgtype.Text, createdAt, updatedAt time.Time) domain.User {
	u := domain.User{
		ID:        id,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if name.Valid {
		u.Name = &name.String
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}

	return u
}

// ptrToPgText converts a *string to pgtype.Text (nil → NULL).
func ptrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
