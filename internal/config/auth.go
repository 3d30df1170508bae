package config

import (
	"errors"
	"os"
	"sync"
)

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// Validate rejects a configuration that would make the auth middleware
// accept tokens signed with an empty key.
func (c *AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Issuer:    os.Getenv("JWT_ISSUER"),
		}
	})
	return authConfig
}
