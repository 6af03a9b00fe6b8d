package topic

import (
	"context"
	"fmt"

	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// ListTopics returns all topics as assembled views, newest first.
func (s *Service) ListTopics(ctx context.Context) ([]view.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	viewerID, authenticated := ctxutil.UserIDFromCtx(ctx)
	assembler := view.NewAssembler(s.views, viewerID, authenticated, s.log)

	return assembler.Topics(ctx, topics), nil
}
