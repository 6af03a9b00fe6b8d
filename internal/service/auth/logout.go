package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	authtoken "github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/domain"
)

// Logout revokes the presented refresh token. Unknown tokens are ignored;
// logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	stored, err := s.tokens.GetByHash(ctx, authtoken.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get refresh token: %w", err)
	}

	if err := s.tokens.RevokeByID(ctx, stored.ID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", stored.UserID.String()))

	return nil
}
