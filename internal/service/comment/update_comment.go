package comment

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

// UpdateCommentResult carries the updated comment and the view keys the
// mutation made stale.
type UpdateCommentResult struct {
	Comment *domain.Comment
	Stale   []view.Key
}

// UpdateComment edits a comment authored by the authenticated user. An
// absent comment and someone else's comment both yield
// domain.ErrUnauthorized.
func (s *Service) UpdateComment(ctx context.Context, input UpdateCommentInput) (*UpdateCommentResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	existing, err := s.comments.GetByID(ctx, input.CommentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if existing.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	updated, err := s.comments.Update(ctx, input.CommentID, userID, strings.TrimSpace(input.Content))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment updated",
		slog.String("user_id", userID.String()),
		slog.String("comment_id", input.CommentID.String()),
	)

	return &UpdateCommentResult{
		Comment: updated,
		Stale:   []view.Key{view.CommentListKey(updated.IdeaID)},
	}, nil
}
