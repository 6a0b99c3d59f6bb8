package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/data"

	// Registers the pgx stdlib driver for sql.Open("pgx", ...).
	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenStore builds the report store selected by configuration.
//
//nolint:ireturn // the backend is chosen at runtime.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (core.ReportStore, error) {
	switch cfg.Backend {
	case config.StoreBackendMemory:
		logger.InfoContext(ctx, "report store ready", "backend", "memory")
		return data.NewMemoryStore(), nil

	case config.StoreBackendFile:
		store, err := data.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		logger.InfoContext(ctx, "report store ready", "backend", "file", "dir", cfg.Dir)
		return store, nil

	case config.StoreBackendRedis:
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "report store ready", "backend", "redis", "addr", cfg.RedisAddr)
		return data.NewRedisStore(client), nil

	case config.StoreBackendPostgres:
		db, err := connectDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store := data.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			if cerr := db.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
			}
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.InfoContext(ctx, "report store ready",
			"backend", "postgres", "host", cfg.Postgres.Host, "database", cfg.Postgres.Name)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.Backend)
	}
}

func connectRedis(ctx context.Context, cfg config.StoreConfig) (redis.UniversalClient, error) { //nolint:ireturn
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", cerr))
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func connectDB(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	// Build DSN using url.URL to safely handle special characters in credentials
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()

	db, err := sql.Open("pgx", u.String())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database connection: %w", cerr))
		}
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
