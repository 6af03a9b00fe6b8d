package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !c.Auth.HasGoogleOAuth() {
		return fmt.Errorf("google oauth must be configured (client id and secret)")
	}

	if c.Board.MaxTitleLen <= 0 {
		return fmt.Errorf("board.max_title_len must be > 0 (got %d)", c.Board.MaxTitleLen)
	}
	if c.Board.MaxContentLen <= 0 {
		return fmt.Errorf("board.max_content_len must be > 0 (got %d)", c.Board.MaxContentLen)
	}
	if c.Cache.ViewTTL < 0 {
		return fmt.Errorf("cache.view_ttl must be >= 0 (got %v)", c.Cache.ViewTTL)
	}

	return nil
}
