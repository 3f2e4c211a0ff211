package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lepenai/lepen-backend/internal/config"
	"github.com/lepenai/lepen-backend/internal/proxy"
)

func main() {
	cfg := config.Load()

	slog.Info("starting lepen-ai-backend",
		"listen", cfg.ListenAddr,
		"chat_model", cfg.ChatModel,
		"image_model", cfg.ImageModel,
		"api_key_configured", cfg.APIKey != "",
	)
	if cfg.APIKey == "" {
		slog.Warn("GOOGLE_API_KEY is not set; AI endpoints will return configuration errors")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := proxy.New(cfg)
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	case err := <-srvErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
