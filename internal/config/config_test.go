package config

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                  "8375",
		Env:                   "development",
		BackendMode:           BackendModeAuto,
		BackendTimeoutSeconds: 10,
		MessageFetchLimit:     10,
		DBPassword:            "password",
		DBSSLMode:             "disable",
	}
}

func TestConfig_BackendConfigured(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
		want bool
	}{
		{"both empty", "", "", false},
		{"url missing", "", "real-key", false},
		{"key missing", "https://abc.supabase.co", "", false},
		{"placeholder url", PlaceholderBackendURL, "real-key", false},
		{"placeholder key", "https://abc.supabase.co", PlaceholderBackendKey, false},
		{"placeholder url with path", PlaceholderBackendURL + "/rest", "real-key", false},
		{"project named your-project", "https://your-project-prod.example.com", "real-key", true},
		{"whitespace only", "   ", "  ", false},
		{"real values", "https://abc.supabase.co", "real-key", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{BackendURL: tt.url, BackendKey: tt.key}
			assert.Equal(t, tt.want, c.BackendConfigured())
		})
	}
}

func TestConfig_EffectiveBackendMode(t *testing.T) {
	c := validConfig()
	assert.Equal(t, BackendModeFixtures, c.EffectiveBackendMode())

	c.BackendURL = "https://abc.supabase.co"
	c.BackendKey = "real-key"
	assert.Equal(t, BackendModeREST, c.EffectiveBackendMode())

	c.BackendMode = BackendModeFixtures
	assert.Equal(t, BackendModeFixtures, c.EffectiveBackendMode())

	prod := validConfig()
	prod.Env = "production"
	prod.BackendURL = PlaceholderBackendURL
	prod.BackendKey = PlaceholderBackendKey
	require.NoError(t, prod.Validate())
	assert.Equal(t, BackendModeFixtures, prod.EffectiveBackendMode())

	c.BackendMode = BackendModePostgres
	assert.Equal(t, BackendModePostgres, c.EffectiveBackendMode())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"zero fetch limit", func(c *Config) { c.MessageFetchLimit = 0 }, true},
		{"zero timeout", func(c *Config) { c.BackendTimeoutSeconds = 0 }, true},
		{"unknown mode", func(c *Config) { c.BackendMode = "graphql" }, true},
		{"rest without credentials", func(c *Config) { c.BackendMode = BackendModeREST }, true},
		{"production with placeholders falls back to fixtures", func(c *Config) {
			c.Env = "production"
			c.BackendURL = PlaceholderBackendURL
			c.BackendKey = PlaceholderBackendKey
		}, false},
		{"production without backend", func(c *Config) {
			c.Env = "production"
		}, false},
		{"production with credentials", func(c *Config) {
			c.Env = "production"
			c.BackendURL = "https://abc.supabase.co"
			c.BackendKey = "real-key"
		}, false},
		{"production fixtures", func(c *Config) {
			c.Env = "production"
			c.BackendMode = BackendModeFixtures
		}, false},
		{"production postgres weak password", func(c *Config) {
			c.Env = "prod"
			c.BackendMode = BackendModePostgres
			c.DBSSLMode = "require"
		}, true},
		{"production postgres without ssl", func(c *Config) {
			c.Env = "production"
			c.BackendMode = BackendModePostgres
			c.DBPassword = "a-strong-password"
		}, true},
		{"production postgres ok", func(c *Config) {
			c.Env = "production"
			c.BackendMode = BackendModePostgres
			c.DBPassword = "a-strong-password"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInspectBackendKey(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return token
	}

	t.Run("opaque key", func(t *testing.T) {
		assert.Empty(t, InspectBackendKey("sb_publishable_abc"))
	})

	t.Run("anon key", func(t *testing.T) {
		key := sign(jwt.MapClaims{"role": "anon", "exp": time.Now().Add(time.Hour).Unix()})
		assert.Empty(t, InspectBackendKey(key))
	})

	t.Run("service role", func(t *testing.T) {
		key := sign(jwt.MapClaims{"role": "service_role"})
		warnings := InspectBackendKey(key)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "service_role")
	})

	t.Run("expired", func(t *testing.T) {
		key := sign(jwt.MapClaims{"role": "anon", "exp": time.Now().Add(-time.Hour).Unix()})
		warnings := InspectBackendKey(key)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "expired")
	})

	t.Run("validate does not log key warnings", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		c := validConfig()
		c.BackendURL = "https://abc.supabase.co"
		c.BackendKey = sign(jwt.MapClaims{"role": "service_role"})
		require.NoError(t, c.Validate())
		assert.Empty(t, buf.String())
	})
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("BACKEND_MODE")
	defer os.Unsetenv("BACKEND_URL")
	defer viper.Reset()

	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("BACKEND_MODE", " Fixtures ")
	os.Setenv("BACKEND_URL", "https://abc.supabase.co/")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, BackendModeFixtures, c.BackendMode)
	assert.Equal(t, "https://abc.supabase.co", c.BackendURL)
	assert.Equal(t, 10, c.MessageFetchLimit)
}
