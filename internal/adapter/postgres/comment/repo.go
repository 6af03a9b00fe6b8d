// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ideaboard/api/internal/adapter/postgres"
	"github.com/ideaboard/api/internal/domain"
)

// CountByIdea is the batch result type for CountByIdeaIDs.
type CountByIdea struct {
	IdeaID uuid.UUID
	Count  int
}

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = `id, idea_id, user_id, content, created_at, updated_at`

const getByIDSQL = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

const listByIdeaSQL = `SELECT ` + commentColumns + ` FROM comments WHERE idea_id = $1 ORDER BY created_at ASC`

const createSQL = `
INSERT INTO comments (idea_id, user_id, content)
VALUES ($1, $2, $3)
RETURNING ` + commentColumns

const updateSQL = `
UPDATE comments
SET content = $3, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + commentColumns

const deleteSQL = `DELETE FROM comments WHERE id = $1 AND user_id = $2`

const countByIdeaIDsSQL = `
SELECT idea_id, count(*) FROM comments WHERE idea_id = ANY($1::uuid[]) GROUP BY idea_id`

// GetByID returns a comment by its ID.
func (r *Repo) GetByID(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, commentID)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", commentID)
	}

	return c, nil
}

// ListByIdea returns the comments on an idea, oldest first.
func (r *Repo) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByIdeaSQL, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list comments by idea: %w", err)
	}
	defer rows.Close()

	result := []domain.Comment{}
	for rows.Next() {
		c, err := scanCommentFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("list comments by idea: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments by idea: %w", err)
	}

	return result, nil
}

// Create inserts a comment on an idea. Returns domain.ErrNotFound when the
// idea is gone (FK violation).
func (r *Repo) Create(ctx context.Context, ideaID, userID uuid.UUID, content string) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, ideaID, userID, content)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", ideaID)
	}

	return c, nil
}

// Update changes the content of a comment owned by userID. Returns
// domain.ErrNotFound when no row matches both the ID and the owner.
func (r *Repo) Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, commentID, userID, content)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", commentID)
	}

	return c, nil
}

// Delete removes a comment owned by userID. Returns domain.ErrNotFound when
// no row matches both the ID and the owner.
func (r *Repo) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, commentID, userID)
	if err != nil {
		return postgres.MapError(err, "comment", commentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	return nil
}

// CountByIdeaIDs returns comment counts for multiple ideas (batch for the
// view assembler). Ideas with no comments are absent from the result.
func (r *Repo) CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) ([]CountByIdea, error) {
	if len(ideaIDs) == 0 {
		return []CountByIdea{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByIdeaIDsSQL, ideaIDs)
	if err != nil {
		return nil, fmt.Errorf("count comments by idea_ids: %w", err)
	}
	defer rows.Close()

	result := []CountByIdea{}
	for rows.Next() {
		var c CountByIdea
		if err := rows.Scan(&c.IdeaID, &c.Count); err != nil {
			return nil, fmt.Errorf("count comments by idea_ids: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count comments by idea_ids: %w", err)
	}

	return result, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func scanCommentFromRows(rows pgx.Rows) (*domain.Comment, error) {
	var c domain.Comment
	err := rows.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
