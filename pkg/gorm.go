package pkg

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/interview-coach/internal/config"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.Database.Configured() {
		return nil, ErrDatabaseURLMissing
	}

	var logLevel logger.LogLevel
	if cfg.IsProduction() {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the tables of every persisted model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.Interview{},
		&models.Question{},
		&models.Evaluation{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
