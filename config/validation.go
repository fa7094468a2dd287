package config

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields []string
	// RequireHashedPassword rejects a plaintext HOUSEHOLD_PASSWORD
	RequireHashedPassword bool
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		RequiredFields: []string{"server.port", "store.driver", "auth.jwt_secret"},
	},
	Test: {
		RequiredFields: []string{"server.port", "store.driver", "auth.jwt_secret"},
	},
	CI: {
		RequiredFields: []string{"server.port", "store.driver", "auth.jwt_secret"},
	},
	Production: {
		RequiredFields:        []string{"server.port", "store.driver", "auth.jwt_secret", "auth.password_hash"},
		RequireHashedPassword: true,
	},
}

func fieldValues(cfg *Config) map[string]string {
	return map[string]string{
		"server.port":        cfg.Server.Port,
		"store.driver":       cfg.Store.Driver,
		"store.sqlite_path":  cfg.Store.SQLitePath,
		"database.host":      cfg.Database.Host,
		"database.name":      cfg.Database.Name,
		"database.user":      cfg.Database.User,
		"auth.jwt_secret":    cfg.Auth.JWTSecret,
		"auth.password_hash": cfg.Auth.PasswordHash,
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	reqs, ok := requirements[cfg.Env]
	if !ok {
		return fmt.Errorf("unknown environment: %s", cfg.Env)
	}

	var errs []error
	values := fieldValues(cfg)
	for _, field := range reqs.RequiredFields {
		if values[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	if cfg.Auth.PasswordHash == "" && cfg.Auth.Password == "" {
		errs = append(errs, ValidationError{Field: "auth.password_hash", Message: "a household password or hash is required"})
	}
	if reqs.RequireHashedPassword && cfg.Auth.Password != "" {
		errs = append(errs, ValidationError{Field: "auth.password", Message: "plaintext passwords are not accepted in production"})
	}

	switch cfg.Store.Driver {
	case DriverSQLite:
		if values["store.sqlite_path"] == "" {
			errs = append(errs, ValidationError{Field: "store.sqlite_path", Message: "is required for the sqlite driver"})
		}
	case DriverPostgres:
		for _, field := range []string{"database.host", "database.name", "database.user"} {
			if values[field] == "" {
				errs = append(errs, ValidationError{Field: field, Message: "is required for the postgres driver"})
			}
		}
	case DriverRedis:
		if !cfg.Redis.Enabled() {
			errs = append(errs, ValidationError{Field: "redis.url", Message: "REDIS_URL or REDIS_HOST is required for the redis driver"})
		}
	case DriverMemory:
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "store.driver", Message: "memory store is not allowed in production"})
		}
	case "":
	default:
		errs = append(errs, ValidationError{Field: "store.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Store.Driver)})
	}

	if cfg.Household.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Household.Timezone); err != nil {
			errs = append(errs, ValidationError{Field: "household.timezone", Message: err.Error()})
		}
	}
	if cfg.Auth.TokenTTL <= 0 {
		errs = append(errs, ValidationError{Field: "auth.token_ttl", Message: "must be positive"})
	}

	return errors.Join(errs...)
}
