package slot

import (
	"context"
	"sync"
)

// Memory is an in-process Slot. It survives as long as the value does, which
// makes it the simplest way to simulate a restart: build a second store over
// the same Memory.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	set    bool
	writes int
}

// NewMemory returns an empty Memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns a Memory slot pre-loaded with data.
func NewMemoryWith(data []byte) *Memory {
	return &Memory{data: append([]byte(nil), data...), set: true}
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
	m.writes++
	return nil
}

func (m *Memory) Close() error { return nil }

// Writes reports how many snapshots have been written.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
