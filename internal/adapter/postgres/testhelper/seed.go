package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ideaboard/api/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func ptr[T any](v T) *T { return &v }

// SeedUser creates a user with a unique email and provider ID.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Name:      ptr("Test User " + suffix),
		AvatarURL: ptr("https://example.com/avatar/" + suffix + ".png"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, avatar_url, provider_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.AvatarURL, "google-"+suffix, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedTopic creates a topic owned by userID. Returns a filled domain.Topic.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Topic {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	topic := domain.Topic{
		ID:          uuid.New(),
		Title:       "Topic " + suffix,
		Description: ptr("Description " + suffix),
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO topics (id, title, description, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		topic.ID, topic.Title, topic.Description, topic.CreatedBy, topic.CreatedAt, topic.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic insert topic: %v", err)
	}

	return topic
}

// SeedIdea creates an idea in topicID owned by userID. Returns a filled domain.Idea.
func SeedIdea(t *testing.T, pool *pgxpool.Pool, topicID, userID uuid.UUID) domain.Idea {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	idea := domain.Idea{
		ID:        uuid.New(),
		TopicID:   topicID,
		Content:   "Idea " + suffix,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO ideas (id, topic_id, content, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		idea.ID, idea.TopicID, idea.Content, idea.CreatedBy, idea.CreatedAt, idea.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedIdea insert idea: %v", err)
	}

	return idea
}

// SeedLike creates a like on ideaID by userID. Returns a filled domain.Like.
func SeedLike(t *testing.T, pool *pgxpool.Pool, ideaID, userID uuid.UUID) domain.Like {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	like := domain.Like{
		ID:        uuid.New(),
		IdeaID:    ideaID,
		UserID:    userID,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO likes (id, idea_id, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		like.ID, like.IdeaID, like.UserID, like.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLike insert like: %v", err)
	}

	return like
}

// SeedComment creates a comment on ideaID by userID. Returns a filled domain.Comment.
func SeedComment(t *testing.T, pool *pgxpool.Pool, ideaID, userID uuid.UUID) domain.Comment {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	comment := domain.Comment{
		ID:        uuid.New(),
		IdeaID:    ideaID,
		UserID:    userID,
		Content:   "Comment " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO comments (id, idea_id, user_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.IdeaID, comment.UserID, comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert comment: %v", err)
	}

	return comment
}
