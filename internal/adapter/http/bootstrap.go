package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	database "doneapp/internal/adapter/database/sqlite"
	"doneapp/internal/adapter/http/routes"
	"doneapp/internal/core/telemetry"
	"doneapp/pkg/config"
)

func StartServer(metrics *telemetry.AppMetrics, logger *config.AppLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) {
	db, _ := database.NewDB()
	defer db.Close()

	container := NewContainer(db, cfg, metrics, logger)
	defer container.Close()

	// The delivery loop is what fires due calendar alerts.
	alertCtx, stopAlerts := context.WithCancel(context.Background())
	defer stopAlerts()

	go container.Center.Run(alertCtx, cfg.AlertTick)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:  container.AuthHandler,
		TodoHandler:  container.TodoHandler,
		SyncHandler:  container.SyncHandler,
		AlertHandler: container.AlertHandler,
		Provider:     container.Provider,
	}, metrics, logger, container.Cache, cfg)

	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"https_enforced", cfg.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
