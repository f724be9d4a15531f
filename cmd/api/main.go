package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	api "doneapp/internal/adapter/http"
	"doneapp/internal/adapter/telemetry"
	"doneapp/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	logger, err := config.NewAppLogger("doneapp")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    "doneapp",
		ServiceVersion: "1.0.0",
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Environment:    cfg.Environment,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if os.Getenv("GIN_MODE") == "release" {
			cfg.Environment = "production"
			cfg.EnforceHTTPS = true
		}

		api.StartServerWithConfig(tel.AppMetrics, logger, cfg)
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
