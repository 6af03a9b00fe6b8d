package auth

// OAuthIdentity is the profile an OAuth provider reports after a code
// exchange. ProviderID is the provider's stable subject identifier, used
// to recognize returning users across email changes.
type OAuthIdentity struct {
	Email      string
	Name       *string
	AvatarURL  *string
	ProviderID string
}
