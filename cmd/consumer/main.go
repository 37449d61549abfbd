package main

import (
	"go-timely/internal/app"

	"go.uber.org/zap"
)

func main() {
	cfg, logger, err := app.Setup()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
