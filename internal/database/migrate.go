package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
)

// RunMigrations creates or updates the key-value table
func RunMigrations(db *gorm.DB) error {
	logging.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
