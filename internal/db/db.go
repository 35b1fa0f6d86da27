package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qualair/airquality-backend/internal/logger"
	"github.com/qualair/airquality-backend/internal/types"
)

// Service owns the single database handle for the process. It is constructed
// once at startup and injected into every repo; there is no package-level
// engine or session state.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the backing store. URLs starting with postgres:// (or
// postgresql://) select the Postgres driver; anything else is treated as a
// SQLite file path, which is the local default.
func New(databaseURL string, log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		serviceLog.Info("Connecting to Postgres...")
		dialector = postgres.Open(databaseURL)
	default:
		serviceLog.Info("Opening SQLite database", "path", databaseURL)
		if dir := filepath.Dir(databaseURL); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %q: %w", dir, err)
			}
		}
		dialector = sqlite.Open(databaseURL)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open database", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(&types.Measurement{}); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
