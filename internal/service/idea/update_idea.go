package idea

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

// UpdateIdeaResult carries the updated idea and the view keys the
// mutation made stale.
type UpdateIdeaResult struct {
	Idea  *domain.Idea
	Stale []view.Key
}

// UpdateIdea edits an idea owned by the authenticated user. An absent idea
// and a non-owned idea both yield domain.ErrUnauthorized.
func (s *Service) UpdateIdea(ctx context.Context, input UpdateIdeaInput) (*UpdateIdeaResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits); err != nil {
		return nil, err
	}

	existing, err := s.ideas.GetByID(ctx, input.IdeaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if existing.CreatedBy != userID {
		return nil, domain.ErrUnauthorized
	}

	updated, err := s.ideas.Update(ctx, input.IdeaID, userID, strings.TrimSpace(input.Content))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("update idea: %w", err)
	}

	s.log.InfoContext(ctx, "idea updated",
		slog.String("user_id", userID.String()),
		slog.String("idea_id", input.IdeaID.String()),
	)

	return &UpdateIdeaResult{
		Idea:  updated,
		Stale: []view.Key{view.IdeaListKey(updated.TopicID)},
	}, nil
}
