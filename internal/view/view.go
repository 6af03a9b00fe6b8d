// Package view assembles API response shapes from domain entities:
// author profiles, like/comment counts, and per-viewer like state.
// Batch loading keeps assembly at a constant number of SQL queries
// regardless of collection size.
package view

import (
	"time"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
)

// User is the public author profile embedded in assembled views.
// Email is deliberately absent.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
}

// Topic is a topic enriched with its author and idea count.
type Topic struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      *User     `json:"author"`
	IdeaCount   int       `json:"idea_count"`
}

// Idea is an idea enriched with its author, counts, and whether the
// current viewer has liked it. IsLiked is always false for anonymous
// viewers.
type Idea struct {
	ID           uuid.UUID `json:"id"`
	TopicID      uuid.UUID `json:"topic_id"`
	Content      string    `json:"content"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Author       *User     `json:"author"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
}

// Comment is a comment enriched with its author.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	IdeaID    uuid.UUID `json:"idea_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *User     `json:"author"`
}

// Like is a like enriched with the liking user's profile.
type Like struct {
	ID        uuid.UUID `json:"id"`
	IdeaID    uuid.UUID `json:"idea_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"user"`
}

// NewUser converts a domain user to its public view. Returns nil for nil.
func NewUser(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
