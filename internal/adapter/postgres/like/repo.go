// Package like implements the Like repository using PostgreSQL.
// A like is unique per (idea, user); the table carries a UNIQUE constraint
// as a backstop for the service-level check-then-act toggle.
package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ideaboard/api/internal/adapter/postgres"
	"github.com/ideaboard/api/internal/domain"
)

// CountByIdea is the batch result type for CountByIdeaIDs.
type CountByIdea struct {
	IdeaID uuid.UUID
	Count  int
}

// Repo provides like persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const existsSQL = `SELECT EXISTS (SELECT 1 FROM likes WHERE idea_id = $1 AND user_id = $2)`

const createSQL = `
INSERT INTO likes (idea_id, user_id)
VALUES ($1, $2)
RETURNING id, idea_id, user_id, created_at`

const deleteSQL = `DELETE FROM likes WHERE idea_id = $1 AND user_id = $2`

const countByIdeaSQL = `SELECT count(*) FROM likes WHERE idea_id = $1`

const countByIdeaIDsSQL = `
SELECT idea_id, count(*) FROM likes WHERE idea_id = ANY($1::uuid[]) GROUP BY idea_id`

const likedByUserSQL = `
SELECT idea_id FROM likes WHERE user_id = $1 AND idea_id = ANY($2::uuid[])`

const listByIdeaSQL = `
SELECT id, idea_id, user_id, created_at FROM likes WHERE idea_id = $1 ORDER BY created_at DESC`

// Exists reports whether the user has liked the idea.
func (r *Repo) Exists(ctx context.Context, ideaID, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, ideaID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}

	return exists, nil
}

// Create inserts a like. Returns domain.ErrAlreadyExists when the (idea, user)
// pair is already present, domain.ErrNotFound when the idea is gone.
func (r *Repo) Create(ctx context.Context, ideaID, userID uuid.UUID) (*domain.Like, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var l domain.Like
	err := querier.QueryRow(ctx, createSQL, ideaID, userID).
		Scan(&l.ID, &l.IdeaID, &l.UserID, &l.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "like", ideaID)
	}

	return &l, nil
}

// Delete removes the user's like from an idea. Not an error if absent
// (0 rows affected is OK).
func (r *Repo) Delete(ctx context.Context, ideaID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSQL, ideaID, userID); err != nil {
		return postgres.MapError(err, "like", ideaID)
	}

	return nil
}

// CountByIdea returns the number of likes on a single idea.
func (r *Repo) CountByIdea(ctx context.Context, ideaID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByIdeaSQL, ideaID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}

	return count, nil
}

// CountByIdeaIDs returns like counts for multiple ideas (batch for the view
// assembler). Ideas with no likes are absent from the result.
func (r *Repo) CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) ([]CountByIdea, error) {
	if len(ideaIDs) == 0 {
		return []CountByIdea{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByIdeaIDsSQL, ideaIDs)
	if err != nil {
		return nil, fmt.Errorf("count likes by idea_ids: %w", err)
	}
	defer rows.Close()

	result := []CountByIdea{}
	for rows.Next() {
		var c CountByIdea
		if err := rows.Scan(&c.IdeaID, &c.Count); err != nil {
			return nil, fmt.Errorf("count likes by idea_ids: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count likes by idea_ids: %w", err)
	}

	return result, nil
}

// LikedByUser returns the subset of ideaIDs the user has liked (batch for
// the viewer-state loader).
func (r *Repo) LikedByUser(ctx context.Context, userID uuid.UUID, ideaIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(ideaIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, likedByUserSQL, userID, ideaIDs)
	if err != nil {
		return nil, fmt.Errorf("liked by user: %w", err)
	}
	defer rows.Close()

	result := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("liked by user: %w", err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("liked by user: %w", err)
	}

	return result, nil
}

// ListByIdea returns the likes on an idea, newest first.
func (r *Repo) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]domain.Like, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByIdeaSQL, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list likes by idea: %w", err)
	}
	defer rows.Close()

	result := []domain.Like{}
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.IdeaID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("list likes by idea: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list likes by idea: %w", err)
	}

	return result, nil
}
