package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for herd-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, passwords) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// Remote store (Supabase) configuration
	Remote RemoteConfig `yaml:"remote"`

	// Local replica configuration (PostgreSQL). Optional: when no host is
	// configured the engine runs on the in-memory store.
	Database DatabaseConfig `yaml:"database"`

	// Sync pass scheduling
	Sync SyncConfig `yaml:"sync"`
}

// RemoteConfig holds the Supabase REST endpoint settings.
type RemoteConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co
	URL string `yaml:"url" env:"SUPABASE_URL" env-default:""`

	// APIKey authenticates every request. Secret - not in YAML.
	APIKey string `yaml:"-" env:"SUPABASE_KEY"`

	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"REMOTE_TIMEOUT_SECONDS" env-default:"30"`
}

// Timeout returns the per-request timeout as a duration.
func (c *RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:""`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"herd"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"herd_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PG_MIGRATIONS_PATH" env-default:"migrations"`
}

// Configured reports whether a local Postgres replica was set up at all.
func (c *DatabaseConfig) Configured() bool {
	return c.Host != ""
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// SyncConfig holds sync pass scheduling and retry settings.
type SyncConfig struct {
	// IntervalSeconds is the delay between full sync passes.
	IntervalSeconds int `yaml:"interval_seconds" env:"SYNC_INTERVAL_SECONDS" env-default:"300"`

	// MaxRetries bounds transport-level retry attempts per request.
	MaxRetries int `yaml:"max_retries" env:"SYNC_MAX_RETRIES" env-default:"3"`
}

// Interval returns the pass interval as a duration.
func (c *SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Load reads configuration from config.yaml with environment variable
// overrides. When no config.yaml exists, configuration comes from the
// environment alone. The version parameter is injected at build time and
// set on the returned Config. Secrets (SUPABASE_KEY, PGPASSWORD) must come
// from environment variables (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Remote.URL == "" {
		return fmt.Errorf("remote url is required (SUPABASE_URL)")
	}
	u, err := url.Parse(c.Remote.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("remote url %q is not an absolute URL", c.Remote.URL)
	}
	if c.Remote.APIKey == "" {
		return fmt.Errorf("remote API key is required (SUPABASE_KEY)")
	}
	if c.Sync.IntervalSeconds <= 0 {
		return fmt.Errorf("sync interval must be positive, got %d", c.Sync.IntervalSeconds)
	}
	return nil
}
