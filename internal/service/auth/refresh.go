package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	authtoken "github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/domain"
)

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Unknown, revoked, and expired tokens all yield
// domain.ErrUnauthorized. Reuse of a revoked token revokes every session
// of that user, since it suggests the token leaked.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, domain.ErrUnauthorized
	}

	stored, err := s.tokens.GetByHash(ctx, authtoken.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	if stored.IsRevoked() {
		s.log.WarnContext(ctx, "revoked refresh token reused",
			slog.String("user_id", stored.UserID.String()),
			slog.String("token_id", stored.ID.String()),
		)
		if revokeErr := s.tokens.RevokeAllByUser(ctx, stored.UserID); revokeErr != nil {
			return nil, fmt.Errorf("revoke sessions: %w", revokeErr)
		}
		return nil, domain.ErrUnauthorized
	}
	if stored.IsExpired(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeByID(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	pair, err := s.issueTokens(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "session refreshed", slog.String("user_id", stored.UserID.String()))

	return pair, nil
}
