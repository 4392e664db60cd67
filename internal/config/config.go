// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend modes accepted by BACKEND_MODE.
const (
	BackendModeAuto     = "auto"
	BackendModeREST     = "rest"
	BackendModePostgres = "postgres"
	BackendModeFixtures = "fixtures"
)

// Placeholder credentials shipped in example environment files. A backend
// configured with either of these is treated as not configured.
const (
	PlaceholderBackendURL = "https://your-project.supabase.co"
	PlaceholderBackendKey = "your-anon-key"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                  string  `mapstructure:"PORT"`
	Env                   string  `mapstructure:"APP_ENV"`
	AllowedOrigins        string  `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags          string  `mapstructure:"FEATURE_FLAGS"`
	BackendMode           string  `mapstructure:"BACKEND_MODE"`
	BackendURL            string  `mapstructure:"BACKEND_URL"`
	BackendKey            string  `mapstructure:"BACKEND_KEY"`
	BackendTimeoutSeconds int     `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	MessageFetchLimit     int     `mapstructure:"MESSAGE_FETCH_LIMIT"`
	FixturesFile          string  `mapstructure:"FIXTURES_FILE"`
	DBHost                string  `mapstructure:"DB_HOST"`
	DBPort                string  `mapstructure:"DB_PORT"`
	DBUser                string  `mapstructure:"DB_USER"`
	DBPassword            string  `mapstructure:"DB_PASSWORD"`
	DBName                string  `mapstructure:"DB_NAME"`
	DBSSLMode             string  `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns        int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns        int     `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMin  int     `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSchemaMode          string  `mapstructure:"DB_SCHEMA_MODE"`
	RedisURL              string  `mapstructure:"REDIS_URL"`
	TracingEnabled        bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter       string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint          string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio    float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
}

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("BACKEND_MODE", BackendModeAuto)
	viper.SetDefault("BACKEND_URL", "")
	viper.SetDefault("BACKEND_KEY", "")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MESSAGE_FETCH_LIMIT", 10)
	viper.SetDefault("FIXTURES_FILE", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "matchboard")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.BackendMode = strings.ToLower(strings.TrimSpace(c.BackendMode))
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	c.BackendKey = strings.TrimSpace(c.BackendKey)
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// BackendConfigured reports whether both hosted-backend credentials are
// present and neither still carries its placeholder value.
func (c *Config) BackendConfigured() bool {
	url := strings.TrimSpace(c.BackendURL)
	key := strings.TrimSpace(c.BackendKey)
	if url == "" || key == "" {
		return false
	}
	if strings.Contains(url, PlaceholderBackendURL) || strings.Contains(key, PlaceholderBackendKey) {
		return false
	}
	return true
}

// EffectiveBackendMode resolves "auto" into the concrete mode that will be used.
func (c *Config) EffectiveBackendMode() string {
	switch c.BackendMode {
	case BackendModeREST, BackendModePostgres, BackendModeFixtures:
		return c.BackendMode
	}
	if c.BackendConfigured() {
		return BackendModeREST
	}
	return BackendModeFixtures
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.MessageFetchLimit <= 0 {
		return errors.New("MESSAGE_FETCH_LIMIT must be positive")
	}
	if c.BackendTimeoutSeconds <= 0 {
		return errors.New("BACKEND_TIMEOUT_SECONDS must be positive")
	}

	switch c.BackendMode {
	case "", BackendModeAuto, BackendModeFixtures, BackendModePostgres:
	case BackendModeREST:
		if !c.BackendConfigured() {
			return errors.New("BACKEND_MODE=rest requires BACKEND_URL and BACKEND_KEY")
		}
	default:
		return fmt.Errorf("unknown BACKEND_MODE %q", c.BackendMode)
	}

	if c.IsProduction() {
		if c.BackendMode == BackendModePostgres {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				return errors.New("DB_SSLMODE must not be 'disable' in production")
			}
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
