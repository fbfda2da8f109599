package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host             string        `env:"POSTGRES_HOST" env-required:"true"`
	Port             int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username         string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password         string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database         string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode          string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MaxConns         int32         `env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout   time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout      time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
	MigrateOnStart   bool          `env:"POSTGRES_MIGRATE_ON_START" env-default:"true"`
	MigrationTimeout time.Duration `env:"POSTGRES_MIGRATION_TIMEOUT" env-default:"30s"`
}

// URL returns the connection string understood by pgx.
func (c PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username), url.QueryEscape(c.Password), c.Host,
		c.Port, c.Database, c.SSLMode)
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"go-team-tasks"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}
