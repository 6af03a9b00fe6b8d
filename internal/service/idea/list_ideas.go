package idea

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// ListIdeas returns the assembled ideas of a topic, ordered by the given
// sort option. Anonymous viewers are welcome; they see IsLiked=false.
func (s *Service) ListIdeas(ctx context.Context, topicID uuid.UUID, sort domain.SortOption) ([]view.Idea, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	ideas, err := s.ideas.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}

	viewerID, authenticated := ctxutil.UserIDFromCtx(ctx)
	assembler := view.NewAssembler(s.views, viewerID, authenticated, s.log)

	assembled := assembler.Ideas(ctx, ideas)
	view.SortIdeas(assembled, sort)

	return assembled, nil
}
