package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/trip-planner/backend/migrations"
)

// SQLite stores the snapshot as one row of the slots table in a local
// database file. It is the closest analogue to browser-local storage.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the embedded migrations.
func OpenSQLite(ctx context.Context, path, key string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("slot.OpenSQLite: path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("slot.OpenSQLite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("slot.OpenSQLite: ping: %w", err)
	}
	if err := migrate(ctx, db, goose.DialectSQLite3, migrations.SQLite()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("slot.OpenSQLite: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

// Read returns the snapshot row for the slot key.
func (s *SQLite) Read(ctx context.Context) ([]byte, error) {
	const q = `SELECT data FROM slots WHERE name = ?`

	var data []byte
	err := s.db.QueryRowContext(ctx, q, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot.SQLite.Read: %w", err)
	}
	return data, nil
}

// Write upserts the snapshot row for the slot key.
func (s *SQLite) Write(ctx context.Context, data []byte) error {
	const q = `
		INSERT INTO slots (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET data = excluded.data, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, q, s.key, data, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("slot.SQLite.Write: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate applies every pending migration in fsys using goose.
func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
