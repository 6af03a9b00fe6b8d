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

// ToggleLikeResult reports the viewer's like state after the toggle and
// the resulting like count, plus the view keys made stale.
type ToggleLikeResult struct {
	Liked     bool
	LikeCount int
	Stale     []view.Key
}

// ToggleLike flips the authenticated user's like on an idea: absent becomes
// present, present becomes absent. Runs in a transaction; the UNIQUE
// (idea_id, user_id) constraint backstops concurrent toggles of the same
// pair, which then surface as domain.ErrAlreadyExists.
func (s *Service) ToggleLike(ctx context.Context, ideaID uuid.UUID) (*ToggleLikeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if ideaID == uuid.Nil {
		return nil, domain.NewValidationError("idea_id", "required")
	}

	// Liking does not require ownership; the idea just has to exist.
	target, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	var liked bool
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, checkErr := s.likes.Exists(txCtx, ideaID, userID)
		if checkErr != nil {
			return fmt.Errorf("check like: %w", checkErr)
		}

		if exists {
			if delErr := s.likes.Delete(txCtx, ideaID, userID); delErr != nil {
				return fmt.Errorf("remove like: %w", delErr)
			}
			liked = false
			return nil
		}

		if _, createErr := s.likes.Create(txCtx, ideaID, userID); createErr != nil {
			if errors.Is(createErr, domain.ErrAlreadyExists) {
				return createErr
			}
			return fmt.Errorf("add like: %w", createErr)
		}
		liked = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	count, err := s.likes.CountByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	s.log.InfoContext(ctx, "like toggled",
		slog.String("user_id", userID.String()),
		slog.String("idea_id", ideaID.String()),
		slog.Bool("liked", liked),
	)

	return &ToggleLikeResult{
		Liked:     liked,
		LikeCount: count,
		Stale: []view.Key{
			view.IdeaListKey(target.TopicID),
			view.LikeListKey(ideaID),
		},
	}, nil
}
