package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qualair/airquality-backend/internal/handlers"
	"github.com/qualair/airquality-backend/internal/middleware"
)

type RouterConfig struct {
	MeasurementHandler *handlers.MeasurementHandler
	StatsHandler       *handlers.StatsHandler
	RequestLogger      *middleware.RequestLogger
	HTTPMetrics        *middleware.HTTPMetrics
	CORSOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handle())
	}
	if cfg.HTTPMetrics != nil {
		router.Use(cfg.HTTPMetrics.Handle())
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: false,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		// Records
		api.GET("/records", cfg.MeasurementHandler.List)
		api.POST("/records", cfg.MeasurementHandler.Create)
		api.GET("/records/:id", cfg.MeasurementHandler.Get)
		api.PUT("/records/:id", cfg.MeasurementHandler.Update)
		api.DELETE("/records/:id", cfg.MeasurementHandler.Delete)
		// Dimensions
		api.GET("/regions", cfg.MeasurementHandler.Regions)
		api.GET("/communes", cfg.MeasurementHandler.Communes)
		api.GET("/years", cfg.MeasurementHandler.Years)
		// Statistics
		api.GET("/stats/region/:region", cfg.StatsHandler.RegionStats)
		api.GET("/stats/commune/:commune", cfg.StatsHandler.CommuneStats)
		api.GET("/trends/:pollutant", cfg.StatsHandler.Trend)
		api.GET("/compare", cfg.StatsHandler.Compare)
		api.GET("/summary", cfg.StatsHandler.Summary)
	}

	return router
}
