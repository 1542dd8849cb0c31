package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
}

func TestLoad(t *testing.T) {
	secrets := t.TempDir()
	writeSecret(t, secrets, "db_password", "s3cret\n")
	writeSecret(t, secrets, "jwt_secret", "jwt-key")

	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "adventure")
	t.Setenv("DB_NAME", "adventure")
	t.Setenv("DB_MAX_IDLE_TIME", "90s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "jwt-key", cfg.JWTSecret)
	assert.Equal(t, 90*time.Second, cfg.DBIdleTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.EqualValues(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, "postgres://adventure:s3cret@db:5432/adventure?sslmode=disable", cfg.GetDSN())
	assert.NotContains(t, cfg.SafeDSN(), "s3cret")
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	secrets := t.TempDir()
	writeSecret(t, secrets, "db_password", "s3cret")

	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "adventure")
	t.Setenv("DB_NAME", "adventure")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestReadSecret_Empty(t *testing.T) {
	secrets := t.TempDir()
	writeSecret(t, secrets, "empty", "  \n")
	t.Setenv("SECRETS_DIR", secrets)

	_, err := ReadSecret("empty")
	assert.ErrorContains(t, err, "is empty")
}

func TestLoadMigrateConfig(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "migrate.yml")
		require.NoError(t, os.WriteFile(path, []byte("database_url: postgres://file\nlog_level: debug\n"), 0o600))

		cfg, err := LoadMigrateConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://file", cfg.DatabaseURL)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")

		cfg, err := LoadMigrateConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, "postgres://env", cfg.DatabaseURL)
		assert.Equal(t, "info", cfg.LogLevel)
	})
}
