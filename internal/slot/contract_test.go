package slot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/slot"
)

// runContract exercises the behaviour every Slot backend must share:
// an unwritten slot reads as ErrEmpty, and each Write fully replaces the
// previous snapshot.
func runContract(t *testing.T, s slot.Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Read(ctx)
	require.ErrorIs(t, err, slot.ErrEmpty, "fresh slot should be empty")

	require.NoError(t, s.Write(ctx, []byte(`[{"id":"1"}]`)))
	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	// A shorter second write must not leave a tail of the first.
	require.NoError(t, s.Write(ctx, []byte(`[]`)))
	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
