package slot_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/slot"
)

func openTestSQLite(t *testing.T, path, key string) *slot.SQLite {
	t.Helper()
	s, err := slot.OpenSQLite(context.Background(), path, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.db")
	runContract(t, openTestSQLite(t, path, "tripData"))
}

// TestSQLite_SurvivesReopen verifies that a snapshot written through one
// handle is read back after the database is closed and opened again, and
// that re-running migrations on an existing file is harmless.
func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trips.db")

	first, err := slot.OpenSQLite(ctx, path, "tripData")
	require.NoError(t, err)
	require.NoError(t, first.Write(ctx, []byte(`["kept"]`)))
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path, "tripData")
	got, err := second.Read(ctx)

	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))
}

func TestSQLite_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trips.db")

	a := openTestSQLite(t, path, "a")
	b := openTestSQLite(t, path, "b")
	require.NoError(t, a.Write(ctx, []byte("from-a")))

	_, err := b.Read(ctx)

	assert.ErrorIs(t, err, slot.ErrEmpty)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := slot.OpenSQLite(context.Background(), "  ", "tripData")

	assert.ErrorContains(t, err, "path is required")
}
