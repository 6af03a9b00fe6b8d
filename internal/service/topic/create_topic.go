package topic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// CreateTopicResult carries the created topic and the view keys the
// mutation made stale.
type CreateTopicResult struct {
	Topic *domain.Topic
	Stale []view.Key
}

// CreateTopic creates a new topic owned by the authenticated user.
func (s *Service) CreateTopic(ctx context.Context, input CreateTopicInput) (*CreateTopicResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	created, err := s.topics.Create(ctx, &domain.Topic{
		Title:       strings.TrimSpace(input.Title),
		Description: trimOrNil(input.Description),
		CreatedBy:   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", created.ID.String()),
	)

	return &CreateTopicResult{
		Topic: created,
		Stale: []view.Key{view.TopicListKey()},
	}, nil
}
