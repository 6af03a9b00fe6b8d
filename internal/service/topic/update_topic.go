package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// UpdateTopicResult carries the updated topic and the view keys the
// mutation made stale.
type UpdateTopicResult struct {
	Topic *domain.Topic
	Stale []view.Key
}

// UpdateTopic updates a topic owned by the authenticated user. An absent
// topic and a non-owned topic are indistinguishable to the caller: both
// yield domain.ErrUnauthorized.
func (s *Service) UpdateTopic(ctx context.Context, input UpdateTopicInput) (*UpdateTopicResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
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

	params := domain.TopicUpdateParams{}
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		params.Title = &trimmed
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			params.Description = ptr("") // clear description -> NULL in DB
		} else {
			trimmed := strings.TrimSpace(*input.Description)
			params.Description = &trimmed
		}
	}

	// Repo re-checks ownership in the WHERE clause, so a concurrent delete
	// or transfer between the gate and the write cannot slip through.
	updated, err := s.topics.Update(ctx, input.TopicID, userID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("update topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic updated",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", input.TopicID.String()),
	)

	return &UpdateTopicResult{
		Topic: updated,
		Stale: []view.Key{view.TopicListKey(), view.TopicKey(input.TopicID)},
	}, nil
}
