package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/migrations"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores the snapshot as one row of the slots table.
type Postgres struct {
	db   db
	pool *pgxpool.Pool // nil when constructed from a caller-owned db
	key  string
}

// OpenPostgres creates a connection pool for dsn, verifies the database is
// reachable, and applies the embedded migrations.
func OpenPostgres(ctx context.Context, dsn, key string) (*Postgres, error) {
	if err := migratePostgres(ctx, dsn); err != nil {
		return nil, fmt.Errorf("slot.OpenPostgres: %w", err)
	}

	// pgxpool.New does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("slot.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("slot.OpenPostgres: ping: %w", err)
	}
	return &Postgres{db: pool, pool: pool, key: key}, nil
}

// NewPostgres constructs a Postgres slot over an existing connection.
// In tests pass a pgx.Tx for rollback isolation. The caller keeps ownership
// of db; Close is a no-op.
func NewPostgres(db db, key string) *Postgres {
	return &Postgres{db: db, key: key}
}

// Read returns the snapshot row for the slot key.
func (p *Postgres) Read(ctx context.Context) ([]byte, error) {
	const q = `SELECT data FROM slots WHERE name = @name`

	var data []byte
	err := p.db.QueryRow(ctx, q, pgx.NamedArgs{"name": p.key}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot.Postgres.Read: %w", err)
	}
	return data, nil
}

// Write upserts the snapshot row for the slot key.
func (p *Postgres) Write(ctx context.Context, data []byte) error {
	const q = `
		INSERT INTO slots (name, data)
		VALUES (@name, @data)
		ON CONFLICT (name) DO UPDATE
		SET data       = EXCLUDED.data,
		    updated_at = now()`

	_, err := p.db.Exec(ctx, q, pgx.NamedArgs{"name": p.key, "data": data})
	if err != nil {
		return fmt.Errorf("slot.Postgres.Write: %w", err)
	}
	return nil
}

// Close closes the pool when the slot owns it.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// migratePostgres runs goose over a short-lived *sql.DB, since goose needs
// database/sql rather than a pgx pool.
func migratePostgres(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB, goose.DialectPostgres, migrations.Postgres())
}
