package main

import (
	"time"

	"go-timely/internal/app"
	"go-timely/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, logger, err := app.Setup()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	agent, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(logger),
		agent.Close,
	)
}
