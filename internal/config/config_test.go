package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"MOBILE_PRIMARY__ENV":                  "development",
		"MOBILE_SERVER__PORT":                  "8080",
		"MOBILE_SERVER__READ_TIMEOUT":          "30",
		"MOBILE_SERVER__WRITE_TIMEOUT":         "30",
		"MOBILE_SERVER__IDLE_TIMEOUT":          "60",
		"MOBILE_SERVER__CORS_ALLOWED_ORIGINS":  "http://localhost:3000, https://m.example.com",
		"MOBILE_DATABASE__HOST":                "localhost",
		"MOBILE_DATABASE__PORT":                "5432",
		"MOBILE_DATABASE__USER":                "mobile",
		"MOBILE_DATABASE__PASSWORD":            "secret",
		"MOBILE_DATABASE__NAME":                "mobile",
		"MOBILE_DATABASE__SSL_MODE":            "disable",
		"MOBILE_DATABASE__MAX_OPEN_CONNS":      "25",
		"MOBILE_DATABASE__MAX_IDLE_CONNS":      "25",
		"MOBILE_DATABASE__CONN_MAX_LIFETIME":   "300",
		"MOBILE_DATABASE__CONN_MAX_IDLE_TIME":  "300",
		"MOBILE_REDIS__ADDRESS":                "localhost:6379",
		"MOBILE_AUTH__SECRET_KEY":              "sk_test",
		"MOBILE_INTEGRATION__RESEND_API_KEY":   "re_test",
		"MOBILE_INTEGRATION__FEEDBACK_INBOX":   "feedback@example.com",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestKeyFromEnv(t *testing.T) {
	assert.Equal(t, "server.read_timeout", keyFromEnv("MOBILE_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", keyFromEnv("MOBILE_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://m.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "feedback@example.com", cfg.Integration.FeedbackInbox)
	assert.False(t, cfg.RateLimit.Enabled)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.GetLogLevel())
}

func TestLoadConfig_PartialObservability(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOBILE_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("MOBILE_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
}

func TestLoadConfig_RateLimitRequiresValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOBILE_RATE_LIMIT__ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("MOBILE_RATE_LIMIT__RPS", "5")
	t.Setenv("MOBILE_RATE_LIMIT__BURST", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MOBILE_DATABASE__HOST", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "config validation failed")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Level = ""
	cfg.Environment = "production"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}
