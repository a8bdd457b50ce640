package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfigDefaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	require.NoError(t, os.Unsetenv("BCRYPT_COST"))
	t.Setenv("PASSWORD_PEPPER", "")
	require.NoError(t, os.Unsetenv("PASSWORD_PEPPER"))

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfigCostBounds(t *testing.T) {
	tests := []struct {
		cost    string
		wantErr bool
	}{
		{"10", false},
		{"14", false},
		{"9", true},
		{"15", true},
		{"abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestPepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "global-secret"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))
	assert.False(t, plain.VerifyPassword("password123", hash), "hash without the pepper must not verify")
}
