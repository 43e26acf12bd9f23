package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyPrefix marks keys generated by GenerateAPIKey.
const APIKeyPrefix = "rs_"

// APIKeyConfig holds configuration for hashing and verifying the service API key.
type APIKeyConfig struct {
	BcryptCost int
	Pepper     string // optional global secret for additional security
	Hash       string // bcrypt hash of the accepted key; empty disables API key auth
}

// NewAPIKeyConfig creates a new API key configuration from environment variables.
// It reads BCRYPT_COST (default: 12), API_KEY_HASH and optionally API_KEY_PEPPER.
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	cost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	config := &APIKeyConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("API_KEY_PEPPER"), // empty if not set
		Hash:       os.Getenv("API_KEY_HASH"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *APIKeyConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// Enabled reports whether an API key hash is configured.
func (c *APIKeyConfig) Enabled() bool {
	return c.Hash != ""
}

// HashKey hashes an API key using bcrypt (with optional pepper).
func (c *APIKeyConfig) HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// VerifyKey checks key against the configured hash. It is always false when no hash is set.
func (c *APIKeyConfig) VerifyKey(key string) bool {
	if !c.Enabled() || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(key+c.Pepper)) == nil
}

// GenerateAPIKey returns a new random API key.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return APIKeyPrefix + hex.EncodeToString(buf), nil
}
