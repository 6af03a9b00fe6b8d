package idea

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// CreateIdeaResult carries the created idea and the view keys the
// mutation made stale.
type CreateIdeaResult struct {
	Idea  *domain.Idea
	Stale []view.Key
}

// CreateIdea posts a new idea to a topic. Any authenticated user may post
// to any topic; a missing topic is domain.ErrNotFound.
func (s *Service) CreateIdea(ctx context.Context, input CreateIdeaInput) (*CreateIdeaResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	if _, err := s.topics.GetByID(ctx, input.TopicID); err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	created, err := s.ideas.Create(ctx, &domain.Idea{
		TopicID:   input.TopicID,
		Content:   strings.TrimSpace(input.Content),
		CreatedBy: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	s.log.InfoContext(ctx, "idea created",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", input.TopicID.String()),
		slog.String("idea_id", created.ID.String()),
	)

	return &CreateIdeaResult{
		Idea: created,
		Stale: []view.Key{
			view.IdeaListKey(input.TopicID),
			view.TopicKey(input.TopicID),
			view.TopicListKey(),
		},
	}, nil
}
