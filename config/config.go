package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	GinModeRelease = "release"

	// DefaultSessionSecret is public; it only suits local development.
	DefaultSessionSecret = "change-me-in-production"
)

var ErrWeakSessionSecret = errors.New("SESSION_SECRET must be set to a private value when GIN_MODE=release")

type Config struct {
	ServiceName string
	LoggerLevel string
	GinMode     string

	HTTPHost string
	HTTPPort int

	StorageDriver  string
	MigrationsPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SessionSecret string
	SessionMaxAge int
	SessionSecure bool
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxifleet"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.GinMode = cast.ToString(getOrReturnDefault("GIN_MODE", GinModeRelease))

	cfg.HTTPHost = cast.ToString(getOrReturnDefault("HTTP_HOST", ""))
	cfg.HTTPPort = cast.ToInt(getOrReturnDefault("HTTP_PORT", 8080))

	cfg.StorageDriver = cast.ToString(getOrReturnDefault("STORAGE_DRIVER", StorageDriverPostgres))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxifleet"))

	cfg.SessionSecret = cast.ToString(getOrReturnDefault("SESSION_SECRET", DefaultSessionSecret))
	cfg.SessionMaxAge = cast.ToInt(getOrReturnDefault("SESSION_MAX_AGE", 1209600))
	cfg.SessionSecure = cast.ToBool(getOrReturnDefault("SESSION_SECURE", false))

	return cfg
}

// PostgresURL is the connection string shared by pgx and golang-migrate.
func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

// UsesDefaultSessionSecret reports whether session cookies would be signed
// with a key anyone can read.
func (c Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret
}

// CheckSessionSecret rejects the default or an empty secret in release mode.
func (c Config) CheckSessionSecret() error {
	if c.GinMode == GinModeRelease && c.UsesDefaultSessionSecret() {
		return ErrWeakSessionSecret
	}
	return nil
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
