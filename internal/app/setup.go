package app

import (
	"fmt"

	"go-timely/internal/config"
	"go-timely/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Setup is the common start of every binary: .env, config, the global
// logger and the validator tag names. The caller syncs the logger.
func Setup() (config.Config, *zap.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := NewLogger(cfg.AppEnv)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	zap.ReplaceGlobals(logger.With(zap.String("instance", cfg.InstanceID)))

	apperror.Init()
	return cfg, zap.L(), nil
}
