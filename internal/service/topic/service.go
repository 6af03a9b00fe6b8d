// Package topic implements topic management: CRUD plus assembled reads.
package topic

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

type topicRepo interface {
	Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	Update(ctx context.Context, topicID, ownerID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error)
	Delete(ctx context.Context, topicID, ownerID uuid.UUID) error
	List(ctx context.Context) ([]domain.Topic, error)
}

// Service provides topic management operations.
type Service struct {
	topics topicRepo
	views  *view.Repos
	limits config.BoardConfig
	log    *slog.Logger
}

// NewService creates a new topic service.
func NewService(log *slog.Logger, topics topicRepo, views *view.Repos, limits config.BoardConfig) *Service {
	return &Service{
		topics: topics,
		views:  views,
		limits: limits,
		log:    log.With("service", "topic"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ptr returns a pointer to the given string.
func ptr(s string) *string {
	return &s
}
