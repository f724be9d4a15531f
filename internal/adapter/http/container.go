package http

import (
	"log/slog"

	database "doneapp/internal/adapter/database/sqlite"
	"doneapp/internal/adapter/database/sqlite/repository"

	"doneapp/internal/adapter/database/memory"
	"doneapp/internal/adapter/database/redis"
	"doneapp/internal/adapter/http/handler"
	"doneapp/internal/adapter/identity"
	"doneapp/internal/adapter/notify"
	remotefirestore "doneapp/internal/adapter/remote/firestore"
	remotememory "doneapp/internal/adapter/remote/memory"
	"doneapp/internal/core/port"
	"doneapp/internal/core/service"
	"doneapp/internal/core/session"
	"doneapp/internal/core/telemetry"
	"doneapp/pkg/config"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	Cache  port.CacheRepository
	Remote port.RemoteCollection
	Center *notify.Center

	Provider port.IdentityProvider
	Cell     *session.Cell

	SyncService *service.SyncService
	TodoService port.TodoService
	AuthService *service.AuthService

	AuthHandler  *handler.AuthHandler
	TodoHandler  *handler.TodoHandler
	SyncHandler  *handler.SyncHandler
	AlertHandler *handler.AlertHandler
}

func NewContainer(db *database.DB, cfg *config.AppConfig, metrics *telemetry.AppMetrics, logger *config.AppLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db, probe)

	cache := newCache(cfg)
	remote := newRemote(cfg)

	center := notify.NewCenter(notify.NewMetricsSink(notify.NewLogSink(), metrics), cfg.AlertsAuthorized)
	scheduler := service.NewAlertScheduler(center)

	syncSvc := service.NewSyncService(todoRepo, remote, probe)
	todoSvc := service.NewTodoService(todoRepo, scheduler, syncSvc, probe)

	provider := identity.NewLocalProvider(userRepo, cfg.JWTSecret)
	cell := session.NewCell()
	authSvc := service.NewAuthService(provider, syncSvc, cell)

	return &Container{
		UserRepo: userRepo,
		TodoRepo: todoRepo,

		Cache:  cache,
		Remote: remote,
		Center: center,

		Provider: provider,
		Cell:     cell,

		SyncService: syncSvc,
		TodoService: todoSvc,
		AuthService: authSvc,

		AuthHandler:  handler.NewAuthHandler(authSvc),
		TodoHandler:  handler.NewTodoHandler(todoSvc, metrics, logger),
		SyncHandler:  handler.NewSyncHandler(syncSvc, metrics),
		AlertHandler: handler.NewAlertHandler(todoSvc, center),
	}
}

// Close releases the long-lived pieces the container owns.
func (c *Container) Close() {
	c.AuthService.Close()
	c.Cell.Close()

	if c.Cache != nil {
		c.Cache.Close()
	}

	if closer, ok := c.Remote.(interface{ Close() error }); ok {
		closer.Close()
	}
}

func newCache(cfg *config.AppConfig) port.CacheRepository {
	if cfg.RedisAddr == "" {
		return memory.NewCacheRepository()
	}

	cache, err := redis.NewCacheRepository(cfg.RedisAddr, cfg.RedisPassword, 0)

	if err != nil {
		slog.Error("Redis unavailable, falling back to in-process cache", "error", err)
		return memory.NewCacheRepository()
	}

	return cache
}

func newRemote(cfg *config.AppConfig) port.RemoteCollection {
	if cfg.FirestoreProject == "" {
		return remotememory.NewCollection()
	}

	remote, err := remotefirestore.NewCollection(cfg.FirestoreProject)

	if err != nil {
		slog.Error("Firestore unavailable, falling back to in-memory collection", "error", err)
		return remotememory.NewCollection()
	}

	return remote
}
