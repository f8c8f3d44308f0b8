// Package testutil provides shared helpers for slot backend tests.
// Networked backends (Postgres, Redis) are opt-in: their helpers skip the
// test when the matching TEST_* variable is unset. File-backed URLs live
// in a per-test temp directory and never skip.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
)

// Environment variables naming the external servers used by integration tests.
const (
	EnvDatabaseURL = "TEST_DATABASE_URL"
	EnvRedisURL    = "TEST_REDIS_URL"
)

// NewPool opens a *pgxpool.Pool on TEST_DATABASE_URL, closed when the test ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireEnv(t, EnvDatabaseURL))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a *sql.DB on TEST_DATABASE_URL through the pgx driver, for
// code that drives goose directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openPgx(requireEnv(t, EnvDatabaseURL))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain, where there is no *testing.T.
// The caller closes the returned handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := openPgx(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

// RedisURL returns TEST_REDIS_URL or skips the test.
func RedisURL(t *testing.T) string {
	t.Helper()
	return requireEnv(t, EnvRedisURL)
}

// SQLiteURL returns a sqlite:// storage URL for a fresh database file.
func SQLiteURL(t *testing.T) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "trips.db")
}

// BucketURL returns a file:// bucket URL rooted in a fresh directory.
func BucketURL(t *testing.T) string {
	t.Helper()
	return "file://" + t.TempDir()
}

// SlotKey returns a key no other test uses, so tests sharing one server
// never see each other's snapshots.
func SlotKey() string {
	return "test:" + uuid.NewString()
}

func openPgx(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func requireEnv(t *testing.T, name string) string {
	t.Helper()
	v := os.Getenv(name)
	if v == "" {
		t.Skip(name + " not set; skipping integration test")
	}
	return v
}
