package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gigtix/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := infrastructure.Bootstrap(ctx)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}
	defer cleanup()

	slog.Info("gigtix is running")

	if err := app.Run(ctx); err != nil {
		slog.Error("app exited with error", "error", err)
		os.Exit(1)
	}
}
