package config

import (
	"fmt"
	"os"
	"time"
)

// DefaultJWTIssuer is the issuer claim of screener tokens.
const DefaultJWTIssuer = "resume-screener"

// Bounds for JWT_EXPIRATION_HOURS.
const (
	DefaultJWTExpirationHours = 24
	MaxJWTExpirationHours     = 24 * 30
)

// JWTConfig signs and checks the API's bearer tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default 24, at most
// 30 days) and JWT_ISSUER (default DefaultJWTIssuer).
func NewJWTConfig() (*JWTConfig, error) {
	hours, err := envInt("JWT_EXPIRATION_HOURS", DefaultJWTExpirationHours)
	if err != nil {
		return nil, err
	}

	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		ExpirationHours: hours,
		Issuer:          envString("JWT_ISSUER", DefaultJWTIssuer),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the secret and token lifetime.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 || c.ExpirationHours > MaxJWTExpirationHours {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be between 1 and %d, got: %d", MaxJWTExpirationHours, c.ExpirationHours)
	}
	return nil
}

// TTL is the lifetime of issued tokens.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
