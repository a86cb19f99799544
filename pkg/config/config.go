package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the statbot process.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (bot token, API keys, passwords) must only come from environment variables.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	Telegram TelegramConfig `yaml:"telegram"`
	LLM      LLMConfig      `yaml:"llm"`
	Database DatabaseConfig `yaml:"database"`
	Loader   LoaderConfig   `yaml:"loader"`
	Log      LogConfig      `yaml:"log"`
}

// TelegramConfig holds the chat transport settings.
type TelegramConfig struct {
	// Token is the bot API token. Secret - not in YAML.
	Token string `yaml:"-" env:"TELEGRAM_TOKEN"`
	// PollTimeoutSeconds is the long-polling timeout for getUpdates.
	PollTimeoutSeconds int `yaml:"poll_timeout_seconds" env:"TELEGRAM_POLL_TIMEOUT_SECONDS" env-default:"30"`
}

// LLMConfig holds completion backend settings.
type LLMConfig struct {
	// Provider selects the backend client: "openai" (any OpenAI-compatible
	// endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	// APIKey is the backend credential. Secret - not in YAML.
	APIKey      string  `yaml:"-" env:"LLM_API_KEY"`
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
	MaxTokens   int     `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"256"`
	// RequestTimeoutSeconds bounds a single completion call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"LLM_REQUEST_TIMEOUT_SECONDS" env-default:"30"`
	// MaxInFlight caps concurrent outstanding backend calls.
	MaxInFlight int `yaml:"max_in_flight" env:"LLM_MAX_IN_FLIGHT" env-default:"4"`
}

// RequestTimeout returns the completion call timeout as a duration.
func (c *LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// DatabaseConfig holds PostgreSQL database configuration.
// The role configured for the bot is expected to be read-only on the two
// statistics tables; only the loader needs write privileges.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"statbot"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"statbot"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	MinConnections int32  `yaml:"min_connections" env:"PGMIN_CONNECTIONS" env-default:"1"`
	// QueryTimeoutSeconds bounds a single statement execution.
	QueryTimeoutSeconds int    `yaml:"query_timeout_seconds" env:"PGQUERY_TIMEOUT_SECONDS" env-default:"15"`
	MigrationsPath      string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// QueryTimeout returns the statement execution timeout as a duration.
func (c *DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// ConnectionString returns a PostgreSQL key/value connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL returns a postgres:// URL, used by the migration runner.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LoaderConfig holds bulk importer settings.
type LoaderConfig struct {
	// Path is the JSON file with videos and their snapshots.
	Path string `yaml:"path" env:"LOADER_PATH" env-default:"data/videos.json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the given YAML file with environment variable
// overrides. When the file does not exist, configuration comes from environment
// variables alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateBot checks the settings the bot process cannot start without.
// Missing secrets are a fatal startup error, not a per-request condition.
func (c *Config) ValidateBot() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is not set")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("llm temperature must be in [0,1], got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	return nil
}
