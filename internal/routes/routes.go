package routes

import (
	"microblog/internal/handlers"
	"microblog/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все маршруты приложения одной таблицей.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, corsConfig cors.Config) {
	// HTML страницы (сессия + CSRF)
	web := ginRouter.Group("/")
	{
		appHandlers.AuthHandler.RegisterRoutes(web)
		appHandlers.MainHandler.RegisterRoutes(web)
	}

	// Публичный JSON API v1
	api := ginRouter.Group("/api/v1")
	api.Use(cors.New(corsConfig))
	{
		appHandlers.APIHandler.RegisterRoutes(api)
	}

	// Служебные эндпоинты
	appHandlers.HealthHandler.RegisterRoutes(&ginRouter.RouterGroup)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ginRouter.NoRoute(appHandlers.Base.NotFound)

	logger.Info("Routes registered", "count", len(ginRouter.Routes()))
}

// DefaultCORS - API только читает данные, поэтому разрешены любые источники без cookies.
func DefaultCORS() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-ID")
	cfg.ExposeHeaders = []string{"X-Request-ID"}
	return cfg
}
