package idea

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// ListLikes returns the assembled likes on an idea, newest first.
func (s *Service) ListLikes(ctx context.Context, ideaID uuid.UUID) ([]view.Like, error) {
	if ideaID == uuid.Nil {
		return nil, domain.NewValidationError("idea_id", "required")
	}

	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	likes, err := s.likes.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}

	viewerID, authenticated := ctxutil.UserIDFromCtx(ctx)
	assembler := view.NewAssembler(s.views, viewerID, authenticated, s.log)

	return assembler.Likes(ctx, likes), nil
}
