package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIKeyConfig(t *testing.T) {
	tests := []struct {
		name        string
		bcryptCost  string
		wantCost    int
		wantErr     bool
		description string
	}{
		{
			name:        "default cost",
			bcryptCost:  "",
			wantCost:    12,
			description: "should use default cost of 12 when BCRYPT_COST is not set",
		},
		{
			name:        "minimum cost",
			bcryptCost:  "10",
			wantCost:    10,
			description: "should accept cost 10",
		},
		{
			name:        "cost too low",
			bcryptCost:  "9",
			wantErr:     true,
			description: "should reject cost below 10",
		},
		{
			name:        "cost too high",
			bcryptCost:  "15",
			wantErr:     true,
			description: "should reject cost above 14",
		},
		{
			name:        "invalid cost",
			bcryptCost:  "invalid",
			wantErr:     true,
			description: "should reject non-numeric cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("API_KEY_HASH", "")
			t.Setenv("API_KEY_PEPPER", "")

			cfg, err := NewAPIKeyConfig()
			if tt.wantErr {
				require.Error(t, err, tt.description)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err, tt.description)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost, tt.description)
			assert.False(t, cfg.Enabled())
		})
	}
}

func TestAPIKeyConfig_HashAndVerify(t *testing.T) {
	cfg := &APIKeyConfig{BcryptCost: 10}

	key, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, APIKeyPrefix))

	hash, err := cfg.HashKey(key)
	require.NoError(t, err)
	assert.NotEqual(t, key, hash)

	assert.False(t, cfg.VerifyKey(key), "no hash configured yet")

	cfg.Hash = hash
	assert.True(t, cfg.Enabled())
	assert.True(t, cfg.VerifyKey(key))
	assert.False(t, cfg.VerifyKey("rs_wrong"))
	assert.False(t, cfg.VerifyKey(""))
}

func TestAPIKeyConfig_PepperMustMatch(t *testing.T) {
	peppered := &APIKeyConfig{BcryptCost: 10, Pepper: "pepper-1"}
	hash, err := peppered.HashKey("rs_key")
	require.NoError(t, err)

	peppered.Hash = hash
	assert.True(t, peppered.VerifyKey("rs_key"))

	rotated := &APIKeyConfig{BcryptCost: 10, Pepper: "pepper-2", Hash: hash}
	assert.False(t, rotated.VerifyKey("rs_key"), "a different pepper should not verify")

	unpeppered := &APIKeyConfig{BcryptCost: 10, Hash: hash}
	assert.False(t, unpeppered.VerifyKey("rs_key"), "removing the pepper should not verify")
}

func TestAPIKeyConfig_FromEnvironment(t *testing.T) {
	hasher := &APIKeyConfig{BcryptCost: 10}
	hash, err := hasher.HashKey("rs_env")
	require.NoError(t, err)

	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("API_KEY_HASH", hash)
	t.Setenv("API_KEY_PEPPER", "")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)
	assert.True(t, cfg.VerifyKey("rs_env"))
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		key, err := GenerateAPIKey()
		require.NoError(t, err)
		assert.Len(t, key, len(APIKeyPrefix)+48)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
