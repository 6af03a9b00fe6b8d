// Package topic implements the Topic repository using PostgreSQL.
package topic

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ideaboard/api/internal/adapter/postgres"
	"github.com/ideaboard/api/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const topicColumns = `id, title, description, created_by, created_at, updated_at`

const getByIDSQL = `SELECT ` + topicColumns + ` FROM topics WHERE id = $1`

const createSQL = `
INSERT INTO topics (title, description, created_by)
VALUES ($1, $2, $3)
RETURNING ` + topicColumns

const deleteSQL = `DELETE FROM topics WHERE id = $1 AND created_by = $2`

// GetByID returns a topic by primary key. Reads are not owner-scoped;
// any viewer may fetch any topic.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}

	return t, nil
}

// List returns all topics ordered by creation time, newest first.
// Returns an empty slice (not nil) when no topics exist.
func (r *Repo) List(ctx context.Context) ([]domain.Topic, error) {
	query := psql.Select("id", "title", "description", "created_by", "created_at", "updated_at").
		From("topics").
		OrderBy("created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("list topics: build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	return scanTopics(rows)
}

// Create inserts a new topic and returns the persisted domain.Topic.
func (r *Repo) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanTopic(querier.QueryRow(ctx, createSQL,
		t.Title, ptrToPgText(t.Description), t.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "topic", uuid.Nil)
	}

	return created, nil
}

// Update applies a partial update as a single conditional write scoped to
// the owner (WHERE id AND created_by), so the ownership check and the write
// cannot be separated by a concurrent delete or reassignment.
// Returns domain.ErrNotFound when no row matched.
func (r *Repo) Update(ctx context.Context, topicID, ownerID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error) {
	update := psql.Update("topics").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": topicID, "created_by": ownerID}).
		Suffix("RETURNING " + topicColumns)

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if params.Description != nil {
		if *params.Description == "" {
			// ptr("") means clear (set NULL in DB).
			update = update.Set("description", nil)
		} else {
			update = update.Set("description", *params.Description)
		}
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("update topic: build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "topic", topicID)
	}

	return t, nil
}

// Delete removes a topic owned by ownerID. CASCADE deletes dependent ideas,
// likes, and comments at the storage layer.
// Returns domain.ErrNotFound when no row matched.
func (r *Repo) Delete(ctx context.Context, topicID, ownerID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, topicID, ownerID)
	if err != nil {
		return postgres.MapError(err, "topic", topicID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var (
		id          uuid.UUID
		title       string
		description pgtype.Text
		createdBy   uuid.UUID
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &title, &description, &createdBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	t := buildTopic(id, title, description, createdBy, createdAt, updatedAt)
	return &t, nil
}

func scanTopics(rows pgx.Rows) ([]domain.Topic, error) {
	result := []domain.Topic{}
	for rows.Next() {
		var (
			id          uuid.UUID
			title       string
			description pgtype.Text
			createdBy   uuid.UUID
			createdAt   time.Time
			updatedAt   time.Time
		)

		if err := rows.Scan(&id, &title, &description, &createdBy, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}

		result = append(result, buildTopic(id, title, description, createdBy, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan topics: %w", err)
	}

	return result, nil
}

func buildTopic(id uuid.UUID, title string, description pgtype.Text, createdBy uuid.UUID, createdAt, updatedAt time.Time) domain.Topic {
	t := domain.Topic{
		ID:        id,
		Title:     title,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if description.Valid {
		t.Description = &description.String
	}

	return t
}

// ptrToPgText converts a *string to pgtype.Text (nil → NULL).
func ptrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
