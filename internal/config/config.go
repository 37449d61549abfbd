package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// Enabled reports whether a database was configured at all.
func (d DBConfig) Enabled() bool { return d.Host != "" }

// Config lists the tunable parameters of the timely agent.
type Config struct {
	Port            string
	AppEnv          string
	InstanceID      string
	APIURL          string
	APITimeout      time.Duration
	RedisAddr       string
	RedisPrefix     string
	KafkaBroker     string
	MQTTBroker      string
	MQTTClientID    string
	JWTSecret       string
	DB              DBConfig
	DeeplinkScheme  string
	Timezone        string
	RateLimitRPS    float64
	RateLimitBurst  int
	GeofenceEnabled bool
	MaxRetries      int
	OutboxRetention time.Duration
}

const (
	defaultPort           = "3000"
	defaultAppEnv         = "development"
	defaultAPITimeout     = 10 * time.Second
	defaultRedisAddr      = "localhost:6379"
	defaultRedisPrefix    = "timely"
	defaultMQTTClientID   = "timely-agent"
	defaultDeeplinkScheme = "timely"
	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
	defaultMaxRetries     = 5
	defaultOutboxKeep     = 24 * time.Hour
)

// Load derives configuration from environment variables, falling back to
// defaults. godotenv is expected to have populated the environment already.
func Load() (Config, error) {
	cfg := Config{
		Port:            defaultPort,
		AppEnv:          defaultAppEnv,
		APIURL:          os.Getenv("TIMELY_API_URL"),
		APITimeout:      defaultAPITimeout,
		RedisAddr:       defaultRedisAddr,
		RedisPrefix:     defaultRedisPrefix,
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTClientID:    defaultMQTTClientID,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		Timezone:        os.Getenv("TIMELY_TIMEZONE"),
		DeeplinkScheme:  defaultDeeplinkScheme,
		RateLimitRPS:    defaultRateLimitRPS,
		RateLimitBurst:  defaultRateLimitBurst,
		GeofenceEnabled: true,
		MaxRetries:      defaultMaxRetries,
		OutboxRetention: defaultOutboxKeep,
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PREFIX"); v != "" {
		cfg.RedisPrefix = v
	}
	if v := os.Getenv("MQTT_CLIENT_ID"); v != "" {
		cfg.MQTTClientID = v
	}
	if v := os.Getenv("DEEPLINK_SCHEME"); v != "" {
		cfg.DeeplinkScheme = v
	}

	cfg.InstanceID = envOr("INSTANCE_ID", cfg.MQTTClientID)

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return Config{}, fmt.Errorf("invalid TIMELY_TIMEZONE: %w", err)
		}
	}

	if v := os.Getenv("TIMELY_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TIMELY_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = rps
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = burst
	}

	if v := os.Getenv("GEOFENCE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GEOFENCE_ENABLED: %w", err)
		}
		cfg.GeofenceEnabled = enabled
	}

	if v := os.Getenv("CONNECT_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid CONNECT_MAX_RETRIES: %q", v)
		}
		cfg.MaxRetries = n
	}

	if v := os.Getenv("OUTBOX_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid OUTBOX_RETENTION: %q", v)
		}
		cfg.OutboxRetention = d
	}

	return cfg, nil
}

// Validate checks what the HTTP agent cannot run without.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("TIMELY_API_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
