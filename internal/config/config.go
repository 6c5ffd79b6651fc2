// Package config loads and validates application configuration from YAML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	LLM           LLMConfig           `yaml:"llm"`
	Store         StoreConfig         `yaml:"store"`
	Billing       BillingConfig       `yaml:"billing"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig describes HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	HandlerTimeout  time.Duration `yaml:"handler_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORSConfig    `yaml:"cors"`
}

// CORSConfig describes Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// AuthConfig describes the editor session token settings. When the secret is
// empty the API runs unauthenticated, which is the development default.
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	SecretEnv string `yaml:"secret_env"`
	Issuer    string `yaml:"issuer"`
	Audience  string `yaml:"audience"`
}

// Secret resolves the token signing secret from the configured environment
// variable.
func (a AuthConfig) Secret() string {
	if a.SecretEnv == "" {
		return ""
	}
	return os.Getenv(a.SecretEnv)
}

// LLMConfig describes the page generation model settings.
type LLMConfig struct {
	APIKeyEnv string        `yaml:"api_key_env"`
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
}

// APIKey resolves the model API key from the configured environment variable.
func (l LLMConfig) APIKey() string {
	if l.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(l.APIKeyEnv)
}

// StoreConfig describes page persistence settings.
type StoreConfig struct {
	Driver          string        `yaml:"driver"` // "memory" or "postgres"
	DSNEnv          string        `yaml:"dsn_env"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN resolves the Postgres connection string from the configured environment
// variable.
func (s StoreConfig) DSN() string {
	if s.DSNEnv == "" {
		return ""
	}
	return os.Getenv(s.DSNEnv)
}

// BillingConfig describes payment webhook settings.
type BillingConfig struct {
	WebhookSecretEnv string           `yaml:"webhook_secret_env"`
	Events           EventStoreConfig `yaml:"events"`
}

// WebhookSecret resolves the shared HMAC key from the configured environment
// variable.
func (b BillingConfig) WebhookSecret() string {
	if b.WebhookSecretEnv == "" {
		return ""
	}
	return os.Getenv(b.WebhookSecretEnv)
}

// EventStoreConfig describes event claim persistence settings.
type EventStoreConfig struct {
	Driver   string        `yaml:"driver"` // "memory" or "redis"
	AddrEnv  string        `yaml:"addr_env"`
	DB       int           `yaml:"db"`
	ClaimTTL time.Duration `yaml:"claim_ttl"`
}

// Addr resolves the Redis address from the configured environment variable.
func (e EventStoreConfig) Addr() string {
	if e.AddrEnv == "" {
		return ""
	}
	return os.Getenv(e.AddrEnv)
}

// ObservabilityConfig describes logging, tracing, and metrics settings.
type ObservabilityConfig struct {
	LogLevel string        `yaml:"log_level"`
	Tracing  TracingConfig `yaml:"tracing"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// TracingConfig describes distributed tracing settings.
type TracingConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Exporter          string  `yaml:"exporter"`
	Endpoint          string  `yaml:"endpoint"`
	SamplingRate      float64 `yaml:"sampling_rate"`
	ForceSampleErrors bool    `yaml:"force_sample_errors"`
}

// MetricsConfig describes Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			HandlerTimeout:  25 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			CORS: CORSConfig{
				AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Authorization", "Content-Type", "X-Project-Id",
					"X-Correlation-Id"},
				MaxAge: 86400,
			},
		},
		Auth: AuthConfig{
			SecretEnv: "APPSCHMIEDE_AUTH_SECRET",
			Issuer:    "appschmiede",
			Audience:  "appschmiede-editor",
		},
		LLM: LLMConfig{
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			Timeout:   20 * time.Second,
		},
		Store: StoreConfig{
			Driver:          "memory",
			DSNEnv:          "APPSCHMIEDE_DB_DSN",
			MaxOpenConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Billing: BillingConfig{
			WebhookSecretEnv: "APPSCHMIEDE_WEBHOOK_SECRET",
			Events: EventStoreConfig{
				Driver:   "memory",
				AddrEnv:  "APPSCHMIEDE_REDIS_ADDR",
				ClaimTTL: 24 * time.Hour,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
			Tracing: TracingConfig{
				Exporter:     "otlp",
				SamplingRate: 0.1,
			},
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// Load reads a YAML config file, applies environment variable overrides,
// and validates required fields. An empty path returns validated defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Store.DSNEnv == "" {
			errs = append(errs, "store.dsn_env is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver %q is not supported", c.Store.Driver))
	}
	switch c.Billing.Events.Driver {
	case "memory":
	case "redis":
		if c.Billing.Events.AddrEnv == "" {
			errs = append(errs, "billing.events.addr_env is required for the redis driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("billing.events.driver %q is not supported", c.Billing.Events.Driver))
	}
	if c.Auth.Enabled && c.Auth.Secret() == "" {
		errs = append(errs, "auth is enabled but the secret environment variable is empty")
	}
	if c.Billing.Events.ClaimTTL <= 0 {
		errs = append(errs, "billing.events.claim_ttl must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// applyEnvOverrides reads APPSCHMIEDE_* environment variables and overrides
// config values. Only the most commonly overridden fields are supported.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APPSCHMIEDE_SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("APPSCHMIEDE_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("APPSCHMIEDE_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("APPSCHMIEDE_EVENTS_DRIVER"); v != "" {
		cfg.Billing.Events.Driver = v
	}
	if v := os.Getenv("APPSCHMIEDE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("APPSCHMIEDE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}
