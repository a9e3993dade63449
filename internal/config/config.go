// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, lookup, cache).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix every recognized environment variable must carry.
//
// Nested keys use "." as delimiter, e.g. AGRO_DATABASE.HOST -> database.host.
const EnvPrefix = "AGRO_"

// ServiceName is the fixed name used to tag logs, traces and APM data.
const ServiceName = "agro-backend"

// Config is the root configuration object for the application.
//
// Observability, Lookup and Cache are pointers because they are optional.
// When absent, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Lookup        *LookupConfig        `koanf:"lookup"`
	Cache         *CacheConfig         `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Redis backs the read cache and the job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig holds third-party credentials used by the lib layer.
type IntegrationConfig struct {
	// ResendAPIKey authenticates the email client that delivers reports.
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`

	// EmailFrom is the sender identity, e.g. "Agro <relatorios@agro.com.br>".
	EmailFrom string `koanf:"email_from"`
}

// CacheConfig controls the Redis read cache in front of resource listings.
type CacheConfig struct {
	// ListTTL is how long a cached listing survives without invalidation.
	ListTTL time.Duration `koanf:"list_ttl" validate:"min=1s"`
}

// DefaultCacheConfig returns the cache defaults used when no cache block is set.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{ListTTL: 5 * time.Minute}
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults, and returns the resulting config.
//
// Any failure is logged fatally: a service with broken config should not start.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// AGRO_DATABASE.HOST -> "database.host" after the prefix is trimmed and lowercased.
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err = validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	if err := mainConfig.Lookup.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid lookup config")
	}

	return mainConfig, nil
}

// applyDefaults fills every optional block that was not provided and forces
// the observability identity to follow the primary environment.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if c.Lookup == nil {
		c.Lookup = DefaultLookupConfig()
	}

	if c.Cache == nil || c.Cache.ListTTL <= 0 {
		c.Cache = DefaultCacheConfig()
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Agro <relatorios@resend.dev>"
	}
}
