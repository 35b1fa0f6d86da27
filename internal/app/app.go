package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qualair/airquality-backend/internal/db"
	"github.com/qualair/airquality-backend/internal/handlers"
	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/middleware"
	"github.com/qualair/airquality-backend/internal/observability"
	"github.com/qualair/airquality-backend/internal/repos"
	"github.com/qualair/airquality-backend/internal/server"
	"github.com/qualair/airquality-backend/internal/services"
	"github.com/qualair/airquality-backend/internal/utils"
)

// App wires the whole service together: one database handle constructed at
// startup and injected into every layer, no package-level state.
type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Router *gin.Engine
	Cfg    Config

	dbService *db.Service
}

func New() (*App, error) {
	// The logger does not exist yet, so this read cannot be logged.
	logMode := utils.GetEnv("LOG_MODE", "development", nil)
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	dbService, err := db.New(cfg.DatabaseURL, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if cfg.SeedData {
		if err := dbService.LoadSampleData(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("seed data: %w", err)
		}
	}
	theDB := dbService.DB()

	measurementRepo := repos.NewMeasurementRepo(theDB, log)
	measurementService := services.NewMeasurementService(log, measurementRepo)

	measurementHandler := handlers.NewMeasurementHandler(measurementService)
	statsHandler := handlers.NewStatsHandler(measurementService)

	metrics := observability.NewMetrics()
	router := server.NewRouter(server.RouterConfig{
		MeasurementHandler: measurementHandler,
		StatsHandler:       statsHandler,
		RequestLogger:      middleware.NewRequestLogger(log),
		HTTPMetrics:        middleware.NewHTTPMetrics(metrics),
		CORSOrigins:        cfg.CORSOrigins,
	})

	return &App{
		Log:       log,
		DB:        theDB,
		Router:    router,
		Cfg:       cfg,
		dbService: dbService,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("Failed to close database", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
