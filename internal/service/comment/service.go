// Package comment implements comment management: posting to an idea,
// author-gated editing and deletion, and assembled listing.
package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

type commentRepo interface {
	GetByID(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]domain.Comment, error)
	Create(ctx context.Context, ideaID, userID uuid.UUID, content string) (*domain.Comment, error)
	Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, userID uuid.UUID) error
}

type ideaRepo interface {
	GetByID(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error)
}

// Service provides comment management operations.
type Service struct {
	comments commentRepo
	ideas    ideaRepo
	views    *view.Repos
	limits   config.BoardConfig
	log      *slog.Logger
}

// NewService creates a new comment service.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	ideas ideaRepo,
	views *view.Repos,
	limits config.BoardConfig,
) *Service {
	return &Service{
		comments: comments,
		ideas:    ideas,
		views:    views,
		limits:   limits,
		log:      log.With("service", "comment"),
	}
}
