package topic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// GetTopic returns a single assembled topic view. Reads are open to
// anonymous viewers; a missing topic is domain.ErrNotFound.
func (s *Service) GetTopic(ctx context.Context, topicID uuid.UUID) (*view.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	t, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}

	viewerID, authenticated := ctxutil.UserIDFromCtx(ctx)
	assembler := view.NewAssembler(s.views, viewerID, authenticated, s.log)
	assembled := assembler.Topic(ctx, t)

	return &assembled, nil
}
