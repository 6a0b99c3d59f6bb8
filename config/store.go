package config

import (
	"fmt"
	"strings"
)

// StoreBackend selects which report store implementation to use.
type StoreBackend string

const (
	// StoreBackendFile persists reports as one file per key under a local directory.
	StoreBackendFile StoreBackend = "file"
	// StoreBackendMemory keeps reports in an in-process map (no durability).
	StoreBackendMemory StoreBackend = "memory"
	// StoreBackendRedis persists reports in Redis.
	StoreBackendRedis StoreBackend = "redis"
	// StoreBackendPostgres persists reports in PostgreSQL.
	StoreBackendPostgres StoreBackend = "postgres"
)

// Valid returns true if the backend is one of the supported values.
func (b StoreBackend) Valid() bool {
	switch b {
	case StoreBackendFile, StoreBackendMemory, StoreBackendRedis, StoreBackendPostgres:
		return true
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for StoreBackend to allow env parsing.
func (b *StoreBackend) UnmarshalText(text []byte) error {
	v := StoreBackend(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid store backend: %q (valid options: file, memory, redis, postgres)", string(text))
	}
	*b = v
	return nil
}

// StoreConfig contains report store configuration.
type StoreConfig struct {
	// Backend selects the store implementation.
	Backend StoreBackend `env:"STORE_BACKEND" envDefault:"file"`

	// Dir is the directory for the file backend.
	Dir string `env:"STORE_DIR" envDefault:"./data/reports"`

	// Redis connection settings for the redis backend.
	RedisAddr     string `env:"STORE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"STORE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"STORE_REDIS_DB"       envDefault:"0"`

	// Postgres connection settings for the postgres backend.
	Postgres DBConfig `envPrefix:"STORE_DB_"`
}

// Sanitize applies guardrails to store configuration values.
func (s *StoreConfig) Sanitize() {
	if !s.Backend.Valid() {
		s.Backend = StoreBackendFile
	}
	if strings.TrimSpace(s.Dir) == "" {
		s.Dir = "./data/reports"
	}
}

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"rivalradar"`
	Password string `env:"PASSWORD" envDefault:"rivalradar"`
	Name     string `env:"NAME"     envDefault:"rivalradar"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}
