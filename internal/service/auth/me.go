package auth

import (
	"context"
	"fmt"

	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/pkg/ctxutil"
)

// Me returns the authenticated user's own profile, email included.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
