package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rivalradar/rivalradar/internal/core"
)

// reportsSchema creates the single key-value table backing the store. Payloads
// are stored as JSONB so operators can query report contents directly.
const reportsSchema = `
CREATE TABLE IF NOT EXISTS kv_reports (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore implements core.ReportStore on top of a Postgres table via the
// pgx stdlib bridge.
type PostgresStore struct {
	db *sql.DB
}

var _ core.ReportStore = (*PostgresStore)(nil)

// NewPostgresStore wraps an open database handle. Call EnsureSchema before use.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table if it does not already exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, reportsSchema); err != nil {
		return fmt.Errorf("create kv_reports table: %w", err)
	}
	return nil
}

// Set upserts value under key.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	const q = `
		INSERT INTO kv_reports (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("upsert report %q: %w", key, classifyPgError(err))
	}
	return nil
}

// Get returns the value stored under key, or core.ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_reports WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select report %q: %w", key, classifyPgError(err))
	}
	return value, nil
}

// Delete removes key. Returns true if a row was deleted.
func (s *PostgresStore) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_reports WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("delete report %q: %w", key, classifyPgError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete report %q: %w", key, err)
	}
	return rows > 0, nil
}

// ListKeys returns all keys starting with prefix.
func (s *PostgresStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT key FROM kv_reports WHERE key LIKE $1 || '%' ORDER BY key`
	rows, err := s.db.QueryContext(ctx, q, prefix)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", classifyPgError(err))
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan report key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return keys, nil
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// classifyPgError surfaces the common operational mistake of pointing the
// store at a database where the schema was never created.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("kv_reports table missing, run EnsureSchema: %w", err)
	}
	return err
}
