package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:      "8480",
			JWTSecret: "a-sufficiently-long-development-secret-key",
			Env:       "development",
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "strong-password-123"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "strong-password-123"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects root bootstrap", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "strong-password-123"
		cfg.DevBootstrapRoot = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid production config", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "strong-password-123"
		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}
