package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// ListComments returns the assembled comments on an idea, oldest first.
func (s *Service) ListComments(ctx context.Context, ideaID uuid.UUID) ([]view.Comment, error) {
	if ideaID == uuid.Nil {
		return nil, domain.NewValidationError("idea_id", "required")
	}

	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	comments, err := s.comments.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	viewerID, authenticated := ctxutil.UserIDFromCtx(ctx)
	assembler := view.NewAssembler(s.views, viewerID, authenticated, s.log)

	return assembler.Comments(ctx, comments), nil
}
