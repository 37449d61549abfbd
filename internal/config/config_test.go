package config_test

import (
	"testing"
	"time"

	"go-timely/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "TIMELY_API_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "GEOFENCE_ENABLED", "DEEPLINK_SCHEME", "MQTT_CLIENT_ID", "INSTANCE_ID", "DB_PORT", "DB_HOST", "CONNECT_MAX_RETRIES", "OUTBOX_RETENTION", "TIMELY_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "timely", cfg.DeeplinkScheme)
	assert.Equal(t, "timely-agent", cfg.InstanceID)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.False(t, cfg.DB.Enabled())
	assert.True(t, cfg.GeofenceEnabled)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 24*time.Hour, cfg.OutboxRetention)
	assert.Empty(t, cfg.Timezone)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("TIMELY_API_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "2")
	t.Setenv("GEOFENCE_ENABLED", "false")
	t.Setenv("MQTT_CLIENT_ID", "agent-7")
	t.Setenv("INSTANCE_ID", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("OUTBOX_RETENTION", "0")
	t.Setenv("TIMELY_TIMEZONE", "UTC")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 2, cfg.RateLimitBurst)
	assert.False(t, cfg.GeofenceEnabled)
	assert.Equal(t, "agent-7", cfg.InstanceID)
	assert.True(t, cfg.DB.Enabled())
	assert.Zero(t, cfg.OutboxRetention)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"TIMELY_API_TIMEOUT":  "soon",
		"RATE_LIMIT_RPS":      "fast",
		"RATE_LIMIT_BURST":    "1.5",
		"GEOFENCE_ENABLED":    "maybe",
		"CONNECT_MAX_RETRIES": "0",
		"OUTBOX_RETENTION":    "-1h",
		"TIMELY_TIMEZONE":     "Mars/Olympus",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, config.Config{}.Validate())
	assert.Error(t, config.Config{APIURL: "http://api"}.Validate())
	assert.NoError(t, config.Config{APIURL: "http://api", JWTSecret: "s"}.Validate())
}
