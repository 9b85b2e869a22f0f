package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "dev", cfg.SessionSecret)
	assert.Equal(t, 12, cfg.SessionLifetimeHours)
	assert.Equal(t, "blogr.sqlite", cfg.DatabasePath)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "prod-secret")
	t.Setenv("SESSION_LIFETIME_HOURS", "2")
	t.Setenv("DATABASE_PATH", "/tmp/other.sqlite")
	t.Setenv("BCRYPT_COST", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "prod-secret", cfg.SessionSecret)
	assert.Equal(t, 2, cfg.SessionLifetimeHours)
	assert.Equal(t, "/tmp/other.sqlite", cfg.DatabasePath)
	assert.Equal(t, 6, cfg.BcryptCost)
}

func TestValidateReleaseRequiresSecret(t *testing.T) {
	cfg := &Config{
		GinMode:              "release",
		SessionSecret:        "dev",
		SessionLifetimeHours: 12,
		DatabasePath:         "blogr.sqlite",
		BcryptCost:           bcrypt.DefaultCost,
	}
	assert.Error(t, cfg.Validate())

	cfg.SessionSecret = "real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		GinMode:              "debug",
		SessionSecret:        "dev",
		SessionLifetimeHours: 12,
		BcryptCost:           bcrypt.MaxCost + 1,
	}
	assert.Error(t, cfg.Validate())

	cfg.BcryptCost = bcrypt.DefaultCost
	cfg.SessionLifetimeHours = 0
	assert.Error(t, cfg.Validate())
}
