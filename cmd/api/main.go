package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/api"
	"github.com/pageza/hearth/backend/internal/database"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/middleware"
	"github.com/pageza/hearth/backend/internal/server"
	"github.com/pageza/hearth/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logging.Init(cfg.LogLevel, cfg.Env.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	backend, err := database.OpenStore(cfg)
	if err != nil {
		logging.Fatal("failed to open store", zap.Error(err))
	}
	defer backend.Close()

	loc, err := time.LoadLocation(cfg.Household.Timezone)
	if err != nil {
		logging.Fatal("invalid household timezone", zap.String("timezone", cfg.Household.Timezone), zap.Error(err))
	}

	planner := service.NewPlannerService(backend.Store, service.WithLocation(loc))
	auth, err := service.NewAuthService(cfg.Auth, cfg.Household)
	if err != nil {
		logging.Fatal("failed to create auth service", zap.Error(err))
	}

	var sink service.BackupSink
	if cfg.Backup.Enabled() {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.Backup)
		if err != nil {
			logging.Fatal("failed to configure s3 backups", zap.Error(err))
		}
		sink = service.NewS3BackupSink(s3cfg, cfg.Backup.PresignTTL)
		logging.Info("remote backups enabled", zap.String("bucket", cfg.Backup.Bucket))
	}

	svc := api.Services{
		Auth:    auth,
		Planner: planner,
		Backup:  service.NewBackupService(planner, sink),
		Health:  backend.Ping,
	}
	if backend.Redis != nil {
		limiter := middleware.NewLoginRateLimiter(backend.Redis, cfg.Auth.LoginLimit, cfg.Auth.LoginWindow)
		svc.LoginLimiter = limiter.RateLimitMiddleware()
	} else {
		logging.Warn("redis not configured, login attempts are not rate limited")
	}

	srv := server.New(cfg, svc)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		logging.Info("received signal", zap.String("signal", sig.String()))
	}

	logging.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.Info("server stopped")
}
