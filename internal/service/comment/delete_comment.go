package comment

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

// DeleteCommentResult carries the view keys the deletion made stale.
type DeleteCommentResult struct {
	Stale []view.Key
}

// DeleteComment removes a comment authored by the authenticated user.
func (s *Service) DeleteComment(ctx context.Context, commentID uuid.UUID) (*DeleteCommentResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if commentID == uuid.Nil {
		return nil, domain.NewValidationError("comment_id", "required")
	}

	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if existing.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.comments.Delete(ctx, commentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment deleted",
		slog.String("user_id", userID.String()),
		slog.String("comment_id", commentID.String()),
	)

	stale := []view.Key{view.CommentListKey(existing.IdeaID)}
	// The idea view carries a comment count, so its topic listing goes
	// stale too. If the idea vanished concurrently, the comment list key
	// alone suffices.
	if parent, ideaErr := s.ideas.GetByID(ctx, existing.IdeaID); ideaErr == nil {
		stale = append(stale, view.IdeaListKey(parent.TopicID))
	}

	return &DeleteCommentResult{Stale: stale}, nil
}
