package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/database"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/service"
)

//go:embed seed.json
var defaultSeed []byte

func main() {
	file := flag.String("file", "", "JSON file with recipes and ingredients (defaults to the bundled set)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logging.Init(cfg.LogLevel, cfg.Env.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	raw := defaultSeed
	if *file != "" {
		raw, err = os.ReadFile(*file)
		if err != nil {
			logging.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
	}

	var data service.SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		logging.Fatal("failed to parse seed data", zap.Error(err))
	}

	backend, err := database.OpenStore(cfg)
	if err != nil {
		logging.Fatal("failed to open store", zap.Error(err))
	}
	defer backend.Close()

	planner := service.NewPlannerService(backend.Store)
	n, err := planner.Seed(context.Background(), data)
	if err != nil {
		logging.Fatal("seeding failed", zap.Error(err))
	}
	logging.Info("seed recipes loaded", zap.Int("recipes", n), zap.Int("ingredients", len(data.Ingredients)))
}
