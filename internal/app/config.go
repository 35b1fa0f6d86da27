package app

import (
	"strings"

	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/utils"
)

// Config carries the runtime settings read once at startup. The log mode is
// not part of it: the logger must exist before the config load so it is read
// separately in app.New.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	SeedData    bool
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8000", log)
	databaseURL := utils.GetEnv("DATABASE_URL", "data/air_quality.db", log)
	seedData := utils.GetEnvAsBool("LOAD_SAMPLE_DATA", true, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return Config{
		HTTPAddr:    httpAddr,
		DatabaseURL: databaseURL,
		SeedData:    seedData,
		CORSOrigins: origins,
	}
}
