package routes

import (
	"net/http"

	"doneapp/internal/adapter/http/handler"
	"doneapp/internal/adapter/http/middleware"
	"doneapp/internal/core/port"
	"doneapp/internal/core/telemetry"
	"doneapp/pkg/config"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler  *handler.AuthHandler
	TodoHandler  *handler.TodoHandler
	SyncHandler  *handler.SyncHandler
	AlertHandler *handler.AlertHandler

	Provider port.IdentityProvider
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.AppLogger, cache port.CacheRepository) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, cache, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.AppLogger, cache port.CacheRepository, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupGinMiddleware(router, "doneapp", metrics, logger, cache, cfg)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers)
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/signup", authHandler.RegisterByEmailAndPassword)
		public.POST("/auth", authHandler.AuthByEmailAndPassword)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.Provider == nil {
		return
	}

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(middleware.SessionMiddleware(handlers.Provider))
	{
		if handlers.AuthHandler != nil {
			protected.POST("/signout", handlers.AuthHandler.SignOut)
		}

		if handlers.TodoHandler != nil {
			protected.GET("/todos", handlers.TodoHandler.GetAllTodos)
			protected.POST("/todos", handlers.TodoHandler.CreateTodo)
			protected.PUT("/todos/:uuid", handlers.TodoHandler.UpdateTodo)
			protected.PATCH("/todos/:uuid/done", handlers.TodoHandler.ToggleDone)
			protected.PATCH("/todos/:uuid/urgent", handlers.TodoHandler.ToggleUrgent)
			protected.DELETE("/todos/:uuid", handlers.TodoHandler.DeleteByUUID)
		}

		if handlers.SyncHandler != nil {
			protected.POST("/sync/upload", handlers.SyncHandler.UploadAll)
		}

		if handlers.AlertHandler != nil {
			protected.GET("/alerts", handlers.AlertHandler.GetPendingAlerts)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}
