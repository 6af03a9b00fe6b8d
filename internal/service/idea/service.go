// Package idea implements idea management: CRUD under a topic, the like
// toggle, and assembled reads with counts and viewer state.
package idea

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

type ideaRepo interface {
	Create(ctx context.Context, i *domain.Idea) (*domain.Idea, error)
	GetByID(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error)
	Update(ctx context.Context, ideaID, ownerID uuid.UUID, content string) (*domain.Idea, error)
	Delete(ctx context.Context, ideaID, ownerID uuid.UUID) error
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Idea, error)
}

type topicRepo interface {
	GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
}

type likeRepo interface {
	Exists(ctx context.Context, ideaID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, ideaID, userID uuid.UUID) (*domain.Like, error)
	Delete(ctx context.Context, ideaID, userID uuid.UUID) error
	CountByIdea(ctx context.Context, ideaID uuid.UUID) (int, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]domain.Like, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides idea management operations.
type Service struct {
	ideas  ideaRepo
	topics topicRepo
	likes  likeRepo
	tx     txManager
	views  *view.Repos
	limits config.BoardConfig
	log    *slog.Logger
}

// NewService creates a new idea service.
func NewService(
	log *slog.Logger,
	ideas ideaRepo,
	topics topicRepo,
	likes likeRepo,
	tx txManager,
	views *view.Repos,
	limits config.BoardConfig,
) *Service {
	return &Service{
		ideas:  ideas,
		topics: topics,
		likes:  likes,
		tx:     tx,
		views:  views,
		limits: limits,
		log:    log.With("service", "idea"),
	}
}
