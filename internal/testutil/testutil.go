// Package testutil provides shared helpers for integration tests that need
// external infrastructure (Redis, PostgreSQL).
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

// SetupTestRedis creates a Redis client for testing. Tests are skipped when
// Redis is not reachable unless TEST_REQUIRE_INFRA is set.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15, // keep test data away from any local development DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		if requireInfra() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})
	return client
}

// SetupTestDB opens a PostgreSQL connection for testing. Tests are skipped
// when the database is not reachable unless TEST_REQUIRE_INFRA is set.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	hostPort := net.JoinHostPort(
		getEnvOrDefault("TEST_DB_HOST", "localhost"),
		getEnvOrDefault("TEST_DB_PORT", "5432"),
	)
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		getEnvOrDefault("TEST_DB_USER", "rivalradar"),
		getEnvOrDefault("TEST_DB_PASSWORD", "rivalradar"),
		hostPort,
		getEnvOrDefault("TEST_DB_NAME", "rivalradar"),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			t.Logf("warning: failed to close database after ping error: %v", cerr)
		}
		if requireInfra() {
			t.Fatalf("PostgreSQL not available for testing at %s: %v", hostPort, err)
		}
		t.Skipf("PostgreSQL not available for testing at %s: %v", hostPort, err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	})
	return db
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func requireInfra() bool {
	return os.Getenv("TEST_REQUIRE_INFRA") == "true" || os.Getenv("TEST_REQUIRE_INFRA") == "1"
}
