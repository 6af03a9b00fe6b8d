// Package idea implements the Idea repository using PostgreSQL.
package idea

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ideaboard/api/internal/adapter/postgres"
	"github.com/ideaboard/api/internal/domain"
)

// CountByTopic is the batch result type for CountByTopicIDs.
type CountByTopic struct {
	TopicID uuid.UUID
	Count   int
}

// Repo provides idea persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new idea repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const ideaColumns = `id, topic_id, content, created_by, created_at, updated_at`

const getByIDSQL = `SELECT ` + ideaColumns + ` FROM ideas WHERE id = $1`

const listByTopicSQL = `SELECT ` + ideaColumns + ` FROM ideas WHERE topic_id = $1 ORDER BY created_at DESC`

const createSQL = `
INSERT INTO ideas (topic_id, content, created_by)
VALUES ($1, $2, $3)
RETURNING ` + ideaColumns

const updateSQL = `
UPDATE ideas SET content = $3, updated_at = now()
WHERE id = $1 AND created_by = $2
RETURNING ` + ideaColumns

const deleteSQL = `DELETE FROM ideas WHERE id = $1 AND created_by = $2`

const countByTopicIDsSQL = `
SELECT topic_id, count(*) FROM ideas WHERE topic_id = ANY($1::uuid[]) GROUP BY topic_id`

// GetByID returns an idea by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	i, err := scanIdea(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "idea", id)
	}

	return i, nil
}

// ListByTopic returns all ideas under a topic, newest first.
// Returns an empty slice (not nil) when the topic has no ideas.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Idea, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list ideas by topic: %w", err)
	}
	defer rows.Close()

	result := []domain.Idea{}
	for rows.Next() {
		i, err := scanIdeaFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("list ideas by topic: %w", err)
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ideas by topic: %w", err)
	}

	return result, nil
}

// Create inserts a new idea and returns the persisted domain.Idea.
// Returns domain.ErrNotFound when the topic does not exist (FK violation).
func (r *Repo) Create(ctx context.Context, i *domain.Idea) (*domain.Idea, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanIdea(querier.QueryRow(ctx, createSQL, i.TopicID, i.Content, i.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "idea", uuid.Nil)
	}

	return created, nil
}

// Update replaces an idea's content as a single conditional write scoped to
// the owner. Returns domain.ErrNotFound when no row matched.
func (r *Repo) Update(ctx context.Context, ideaID, ownerID uuid.UUID, content string) (*domain.Idea, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	i, err := scanIdea(querier.QueryRow(ctx, updateSQL, ideaID, ownerID, content))
	if err != nil {
		return nil, postgres.MapError(err, "idea", ideaID)
	}

	return i, nil
}

// Delete removes an idea owned by ownerID. CASCADE deletes its likes and
// comments. Returns domain.ErrNotFound when no row matched.
func (r *Repo) Delete(ctx context.Context, ideaID, ownerID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, ideaID, ownerID)
	if err != nil {
		return postgres.MapError(err, "idea", ideaID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("idea %s: %w", ideaID, domain.ErrNotFound)
	}

	return nil
}

// CountByTopicIDs returns idea counts for multiple topics (batch for the
// view assembler's count loader). Topics with no ideas are absent from the
// result; callers default them to zero.
func (r *Repo) CountByTopicIDs(ctx context.Context, topicIDs []uuid.UUID) ([]CountByTopic, error) {
	if len(topicIDs) == 0 {
		return []CountByTopic{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByTopicIDsSQL, topicIDs)
	if err != nil {
		return nil, fmt.Errorf("count ideas by topic_ids: %w", err)
	}
	defer rows.Close()

	result := []CountByTopic{}
	for rows.Next() {
		var c CountByTopic
		if err := rows.Scan(&c.TopicID, &c.Count); err != nil {
			return nil, fmt.Errorf("count ideas by topic_ids: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count ideas by topic_ids: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanIdea(row pgx.Row) (*domain.Idea, error) {
	var i domain.Idea
	if err := row.Scan(&i.ID, &i.TopicID, &i.Content, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func scanIdeaFromRows(rows pgx.Rows) (domain.Idea, error) {
	var i domain.Idea
	if err := rows.Scan(&i.ID, &i.TopicID, &i.Content, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return domain.Idea{}, err
	}
	return i, nil
}
