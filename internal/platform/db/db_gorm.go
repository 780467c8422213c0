// Package db opens the GORM connection used by the identity stores.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"identity_backend/internal/feature/identity/domain/entity"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const connectTimeout = 60 * time.Second

// sqliteBusyTimeoutMS is how long a SQLite writer waits for a lock before failing.
const sqliteBusyTimeoutMS = 5000

// retryInterval is the pause between two connection attempts.
var retryInterval = 3 * time.Second

// Config describes how to reach the database.
type Config struct {
	Driver   string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	// InstanceName is a Cloud SQL instance connection name. When set, the
	// connection goes through the /cloudsql unix socket instead of Host/Port.
	InstanceName string
	// Path is the SQLite database file.
	Path string
	// RunMigrations creates the identity tables at start-up.
	RunMigrations bool
}

// LoadConfigFromEnv reads the database configuration from the environment.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:        getenv("DB_DRIVER", DriverPostgres),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          getenv("DB_HOST", "localhost"),
		Port:          getenv("DB_PORT", "5432"),
		SSLMode:       getenv("DB_SSLMODE", "disable"),
		InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
		Path:          getenv("DB_PATH", "identity.db"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN returns the driver-specific connection string.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		sep := "?"
		if strings.Contains(cfg.Path, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%s_busy_timeout=%d", cfg.Path, sep, sqliteBusyTimeoutMS)
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener returns the function that opens a connection for the configured driver.
func Opener(cfg Config) (func(dsn string) (*gorm.DB, error), error) {
	var dial func(string) gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dial = postgres.Open
	case DriverSQLite:
		dial = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dial(dsn), &gorm.Config{TranslateError: true})
	}, nil
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to the configured database and, when enabled, migrates the identity schema.
func OpenDB(cfg Config) (*gorm.DB, error) {
	opener, err := Opener(cfg)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		// SQLite has a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(entity.Models[string]()...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("identity schema migrated", "driver", cfg.Driver)
	}

	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
