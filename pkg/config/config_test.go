package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok-123")
	t.Setenv("LLM_API_KEY", "key-456")
	t.Setenv("PGUSER", "reader")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.Telegram.Token)
	assert.Equal(t, "key-456", cfg.LLM.APIKey)
	assert.Equal(t, "reader", cfg.Database.User)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, 256, cfg.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLM.RequestTimeout())
	assert.Equal(t, 4, cfg.LLM.MaxInFlight)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 15*time.Second, cfg.Database.QueryTimeout())
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Telegram.PollTimeoutSeconds)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
env: production
llm:
  provider: anthropic
  model: claude-3-5-haiku-latest
  temperature: 0.2
database:
  host: db.internal
  port: 5433
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PGHOST", "override.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	// Env wins over YAML.
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateBot(t *testing.T) {
	base := func() *Config {
		return &Config{
			Telegram: TelegramConfig{Token: "tok"},
			LLM:      LLMConfig{APIKey: "key", Temperature: 0.1, MaxTokens: 256},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().ValidateBot())
	})

	t.Run("missing telegram token", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.Token = ""
		assert.ErrorContains(t, cfg.ValidateBot(), "TELEGRAM_TOKEN")
	})

	t.Run("missing llm key", func(t *testing.T) {
		cfg := base()
		cfg.LLM.APIKey = ""
		assert.ErrorContains(t, cfg.ValidateBot(), "LLM_API_KEY")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := base()
		cfg.LLM.Temperature = 1.5
		assert.ErrorContains(t, cfg.ValidateBot(), "temperature")
	})

	t.Run("non-positive max tokens", func(t *testing.T) {
		cfg := base()
		cfg.LLM.MaxTokens = 0
		assert.ErrorContains(t, cfg.ValidateBot(), "max_tokens")
	})
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "statbot", Password: "s3cret",
		Database: "statbot", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=statbot password=s3cret dbname=statbot sslmode=disable",
		cfg.ConnectionString())
}

func TestDatabaseConfig_URL(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "statbot", Password: "p@ss/word",
		Database: "statbot", SSLMode: "disable",
	}
	u := cfg.URL()
	assert.Contains(t, u, "postgres://")
	assert.Contains(t, u, "sslmode=disable")
	// Password must be URL-escaped.
	assert.NotContains(t, u, "p@ss/word")
}
