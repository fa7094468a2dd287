package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/database"
	"github.com/pageza/hearth/backend/internal/logging"
)

// migrate creates the key-value table without starting the server
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logging.Init(cfg.LogLevel, cfg.Env.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal("migration failed", zap.Error(err))
	}
	logging.Info("migrations applied", zap.String("driver", cfg.Store.Driver))
}
