package idea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// DeleteIdeaResult carries the view keys the deletion made stale.
type DeleteIdeaResult struct {
	Stale []view.Key
}

// DeleteIdea removes an idea owned by the authenticated user. Its likes
// and comments go with it via the storage layer cascade.
func (s *Service) DeleteIdea(ctx context.Context, ideaID uuid.UUID) (*DeleteIdeaResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if ideaID == uuid.Nil {
		return nil, domain.NewValidationError("idea_id", "required")
	}

	existing, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if existing.CreatedBy != userID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.ideas.Delete(ctx, ideaID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("delete idea: %w", err)
	}

	s.log.InfoContext(ctx, "idea deleted",
		slog.String("user_id", userID.String()),
		slog.String("idea_id", ideaID.String()),
	)

	return &DeleteIdeaResult{
		Stale: []view.Key{
			view.IdeaListKey(existing.TopicID),
			view.TopicKey(existing.TopicID),
			view.TopicListKey(),
			view.LikeListKey(ideaID),
			view.CommentListKey(ideaID),
		},
	}, nil
}
