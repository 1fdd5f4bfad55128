package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/quiz-service/internal/app"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := utils.ToSlogLogger(utils.NewLogger(os.Getenv("ENVIRONMENT")))
	if err := run(ctx, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

// run loads the configuration and serves until ctx is cancelled.
func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer application.Close()

	logger.Info("Starting quiz service", "environment", cfg.Environment, "port", cfg.Port)
	return application.Run(ctx)
}
