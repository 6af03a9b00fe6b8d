package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ideaboard/api/internal/domain"
)

// LoginResult carries the signed-in user and their session tokens.
type LoginResult struct {
	User   *domain.User
	Tokens *TokenPair
}

// LoginURL returns the provider consent URL the client should redirect to.
// State is the caller's CSRF token, echoed back on the callback.
func (s *Service) LoginURL(state string) string {
	return s.verifier.AuthURL(state)
}

// Login exchanges a provider authorization code for a session. First login
// creates the profile; later logins sync name and avatar from the provider.
func (s *Service) Login(ctx context.Context, code string) (*LoginResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("code", "required")
	}

	identity, err := s.verifier.VerifyCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}

	user, err := s.users.GetByProviderID(ctx, identity.ProviderID)
	switch {
	case err == nil:
		if synced, syncErr := s.users.UpdateProfile(ctx, user.ID, identity.Name, identity.AvatarURL); syncErr != nil {
			// Profile sync is best-effort; a stale name must not block login.
			s.log.WarnContext(ctx, "profile sync failed",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", syncErr),
			)
		} else {
			user = synced
		}
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.users.Create(ctx, &domain.User{
			Email:     identity.Email,
			Name:      identity.Name,
			AvatarURL: identity.AvatarURL,
		}, identity.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	default:
		return nil, fmt.Errorf("get user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))

	return &LoginResult{User: user, Tokens: tokens}, nil
}
