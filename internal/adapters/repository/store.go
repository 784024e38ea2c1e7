// internal/adapters/repository/store.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

var _ ports.StoragePort = (*Store)(nil)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to SQLite (dsn is a file path) or PostgreSQL (dsn is a
// connection URL).
func Open(driver, dsn string) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error
	switch driver {
	case DriverSQLite:
		db, err = sqlx.Open("sqlite3", sqliteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DriverPostgres:
		db, err = sqlx.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Store keeps the client's durable keys in the kv_store table. Namespace
// separates profiles sharing one database.
type Store struct {
	db        *sqlx.DB
	namespace string
}

func NewStore(db *sqlx.DB, namespace string) *Store {
	if namespace == "" {
		namespace = "default"
	}
	return &Store{db: db, namespace: namespace}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := s.db.Rebind("SELECT value FROM kv_store WHERE namespace = ? AND storage_key = ?")
	err := s.db.GetContext(ctx, &value, query, s.namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_store (namespace, storage_key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, storage_key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	_, err := s.db.ExecContext(ctx, query, s.namespace, key, value, time.Now().UTC())
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind("DELETE FROM kv_store WHERE namespace = ? AND storage_key = ?")
	_, err := s.db.ExecContext(ctx, query, s.namespace, key)
	return err
}

// sqliteDSN turns on WAL and a busy timeout, keeping any query parameters
// already present in path.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_journal_mode=WAL&_busy_timeout=5000"
}
