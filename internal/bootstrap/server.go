package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ShutdownHook releases a component after the HTTP server stopped accepting
// requests.
type ShutdownHook func(ctx context.Context)

// StartHTTPServer serves router until SIGINT or SIGTERM.
func StartHTTPServer(
	router *gin.Engine,
	cfg ServerConfig,
	auditLogger AuditLogger,
	hooks ...ShutdownHook,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, router, cfg, auditLogger, hooks...); err != nil {
		zap.L().Fatal("http server failed", zap.Error(err))
	}
}

// Serve runs router until ctx is done, then drains in-flight requests and
// runs hooks in order. It returns early with the listener error if the
// server cannot start.
func Serve(
	ctx context.Context,
	router http.Handler,
	cfg ServerConfig,
	auditLogger AuditLogger,
	hooks ...ShutdownHook,
) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	listenErr := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	zap.L().Info("shutdown signal received", zap.Error(context.Cause(ctx)))

	// audit before shutdown so the entry survives a forced exit
	auditLogger.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta: map[string]any{
			"port": cfg.Port,
		},
	})

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("forced shutdown", zap.Error(err))
	} else {
		zap.L().Info("server exited gracefully")
	}

	for _, hook := range hooks {
		hook(shutdownCtx)
	}
	return nil
}
