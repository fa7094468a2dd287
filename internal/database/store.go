package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
)

// Backend is the opened household store plus the connections behind it
type Backend struct {
	Store kvstore.Store
	DB    *gorm.DB
	// Redis is set when redis is configured, whichever driver holds the store
	Redis *redis.Client
}

// OpenStore connects the store selected by cfg.Store.Driver and migrates sql backends
func OpenStore(cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	if cfg.Redis.Enabled() {
		client, err := NewRedisClient(cfg.Redis)
		if err != nil {
			if cfg.Store.Driver == config.DriverRedis {
				return nil, err
			}
			// only the login limiter needs it
			logging.Warn("redis unavailable, continuing without it", zap.Error(err))
		} else {
			b.Redis = client
		}
	}

	switch cfg.Store.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := Open(cfg)
		if err != nil {
			b.Close()
			return nil, err
		}
		if err := RunMigrations(db); err != nil {
			_ = Close(db)
			b.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		b.DB = db
		b.Store = kvstore.NewGormStore(db)
	case config.DriverRedis:
		b.Store = kvstore.NewRedisStore(b.Redis, cfg.Redis.KeyPrefix)
	case config.DriverMemory:
		logging.Warn("using in-memory store, data is lost on restart")
		b.Store = kvstore.NewMemoryStore()
	default:
		b.Close()
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return b, nil
}

// Ping checks every connection the backend holds
func (b *Backend) Ping(ctx context.Context) error {
	var errs []error
	if b.DB != nil {
		errs = append(errs, HealthCheck(ctx, b.DB))
	}
	if b.Redis != nil {
		errs = append(errs, b.Redis.Ping(ctx).Err())
	}
	return errors.Join(errs...)
}

// Close releases every connection
func (b *Backend) Close() {
	if b.DB != nil {
		if err := Close(b.DB); err != nil {
			logging.Warn("closing database", zap.Error(err))
		}
	}
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			logging.Warn("closing redis", zap.Error(err))
		}
	}
}
