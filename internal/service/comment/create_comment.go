package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// CreateCommentResult carries the created comment and the view keys the
// mutation made stale.
type CreateCommentResult struct {
	Comment *domain.Comment
	Stale   []view.Key
}

// CreateComment posts a comment on an idea. Any authenticated user may
// comment on any idea; a missing idea is domain.ErrNotFound.
func (s *Service) CreateComment(ctx context.Context, input CreateCommentInput) (*CreateCommentResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	target, err := s.ideas.GetByID(ctx, input.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	created, err := s.comments.Create(ctx, input.IdeaID, userID, strings.TrimSpace(input.Content))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment created",
		slog.String("user_id", userID.String()),
		slog.String("idea_id", input.IdeaID.String()),
		slog.String("comment_id", created.ID.String()),
	)

	return &CreateCommentResult{
		Comment: created,
		Stale: []view.Key{
			view.CommentListKey(input.IdeaID),
			view.IdeaListKey(target.TopicID),
		},
	}, nil
}
