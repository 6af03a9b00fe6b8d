package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// DeleteTopicResult carries the view keys the deletion made stale.
type DeleteTopicResult struct {
	Stale []view.Key
}

// DeleteTopic deletes a topic owned by the authenticated user. Ideas,
// likes, and comments under it are removed by the storage layer cascade.
func (s *Service) DeleteTopic(ctx context.Context, input DeleteTopicInput) (*DeleteTopicResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.topics.GetByID(ctx, input.TopicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}
	if existing.CreatedBy != userID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.topics.Delete(ctx, input.TopicID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("delete topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", input.TopicID.String()),
	)

	return &DeleteTopicResult{
		Stale: []view.Key{
			view.TopicListKey(),
			view.TopicKey(input.TopicID),
			view.IdeaListKey(input.TopicID),
		},
	}, nil
}
