package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env       Environment     `mapstructure:"-"`
	LogLevel  string          `mapstructure:"log_level"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Household HouseholdConfig `mapstructure:"household"`
	Backup    BackupConfig    `mapstructure:"backup"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port for the listener
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// StoreConfig selects where the household data lives
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DatabaseConfig is used by the postgres driver
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN renders a libpq style connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig is used by the redis store and the login rate limiter
type RedisConfig struct {
	URL       string `mapstructure:"url"`
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Enabled reports whether a redis server was configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// AuthConfig holds the household login settings
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	PasswordHash string        `mapstructure:"password_hash"`
	Password     string        `mapstructure:"password"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	LoginLimit   int           `mapstructure:"login_limit"`
	LoginWindow  time.Duration `mapstructure:"login_window"`
}

// HouseholdConfig names the two rota members and the household's local time zone
type HouseholdConfig struct {
	PersonA  string `mapstructure:"person_a"`
	PersonB  string `mapstructure:"person_b"`
	Timezone string `mapstructure:"timezone"`
}

// BackupConfig configures the optional S3 backup sink
type BackupConfig struct {
	Bucket     string        `mapstructure:"bucket"`
	Region     string        `mapstructure:"region"`
	Prefix     string        `mapstructure:"prefix"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// Enabled reports whether remote backups are configured
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig reads .env, the environment and docker secrets, in increasing precedence for secrets
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = env

	loadSecrets(cfg, env)
	applyEnvironmentDefaults(cfg, env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.sqlite_path", "hearth.db")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "hearth")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "hearth:")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("auth.login_limit", 10)
	v.SetDefault("auth.login_window", "1m")

	v.SetDefault("household.person_a", "PersonA")
	v.SetDefault("household.person_b", "PersonB")
	v.SetDefault("household.timezone", "UTC")

	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.region", "")
	v.SetDefault("backup.prefix", "backups/")
	v.SetDefault("backup.presign_ttl", "15m")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
}

// bindEnv maps keys whose environment names differ from the key path
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"store.sqlite_path":    "SQLITE_PATH",
		"database.host":        "DB_HOST",
		"database.port":        "DB_PORT",
		"database.user":        "DB_USER",
		"database.password":    "DB_PASSWORD",
		"database.name":        "DB_NAME",
		"database.ssl_mode":    "DB_SSL_MODE",
		"auth.jwt_secret":      "JWT_SECRET",
		"auth.password_hash":   "HOUSEHOLD_PASSWORD_HASH",
		"auth.password":        "HOUSEHOLD_PASSWORD",
		"auth.token_ttl":       "TOKEN_TTL",
		"auth.login_limit":     "LOGIN_RATE_LIMIT",
		"auth.login_window":    "LOGIN_RATE_WINDOW",
		"household.person_a":   "PERSON_A_NAME",
		"household.person_b":   "PERSON_B_NAME",
		"household.timezone":   "HOUSEHOLD_TIMEZONE",
		"backup.bucket":        "S3_BUCKET_NAME",
		"backup.region":        "AWS_REGION",
		"backup.prefix":        "BACKUP_PREFIX",
		"backup.presign_ttl":   "BACKUP_PRESIGN_TTL",
		"cors.allowed_origins": "CORS_ORIGINS",
	}
	for key, envName := range bindings {
		if err := v.BindEnv(key, envName); err != nil {
			return err
		}
	}
	return nil
}

// loadSecrets overlays docker secrets. In production a secret always wins over the
// environment, elsewhere it only fills values that are still empty.
func loadSecrets(cfg *Config, env Environment) {
	overlay := func(dst *string, name string) {
		secret := readSecret(name)
		if secret == "" {
			return
		}
		if env == Production || *dst == "" {
			*dst = secret
		}
	}
	overlay(&cfg.Auth.JWTSecret, "jwt_secret")
	overlay(&cfg.Auth.PasswordHash, "household_password_hash")
	overlay(&cfg.Database.Password, "db_password")
	overlay(&cfg.Redis.Password, "redis_password")
	overlay(&cfg.Redis.URL, "redis_url")
}

// applyEnvironmentDefaults lets a development checkout start without any secrets
func applyEnvironmentDefaults(cfg *Config, env Environment) {
	if env != Development && env != Test {
		return
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "development-jwt-secret"
	}
	if cfg.Auth.PasswordHash == "" && cfg.Auth.Password == "" {
		cfg.Auth.Password = "hearth"
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
