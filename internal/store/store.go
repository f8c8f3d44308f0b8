// Package store owns the in-memory trip collection and keeps the persistence
// slot in step with it. Every mutation writes the whole collection before it
// returns; a failed write leaves both memory and the slot as they were.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/slot"
)

// TripStore is the single owner of all trips. Construct it once at startup
// with New and pass it to whoever needs it. Safe for concurrent use.
type TripStore struct {
	mu     sync.RWMutex
	trips  []domain.Trip
	slot   slot.Slot
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a TripStore.
type Option func(*TripStore)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *TripStore) { s.now = now }
}

// WithIDGenerator overrides how trip identifiers are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *TripStore) { s.newID = newID }
}

// New builds a store over sl and hydrates it from the slot's current
// snapshot. An empty, unreadable or corrupt snapshot is logged and the store
// starts empty; New itself never fails on bad data.
func New(ctx context.Context, sl slot.Slot, logger *slog.Logger, opts ...Option) *TripStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TripStore{
		trips:  []domain.Trip{},
		slot:   sl,
		logger: logger,
		// UTC drops the monotonic reading so a reloaded trip compares equal.
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *TripStore) load(ctx context.Context) {
	data, err := s.slot.Read(ctx)
	switch {
	case errors.Is(err, slot.ErrEmpty):
		s.logger.Info("trip store: slot empty, starting fresh")
		return
	case err != nil:
		s.logger.Error("trip store: read slot failed, starting empty", "error", err)
		return
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		s.logger.Warn("trip store: discarding unreadable snapshot",
			"bytes", len(data),
			"error", err,
		)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	s.trips = trips
	s.logger.Info("trip store: hydrated", "trips", len(trips))
}

// List returns every trip in insertion order. The result is a deep copy the
// caller may modify freely.
func (s *TripStore) List() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the trip with the given ID, or domain.ErrNotFound.
func (s *TripStore) Get(id string) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("store.TripStore.Get: %w", domain.ErrNotFound)
	}
	return s.trips[i].Clone(), nil
}

// Create assigns a fresh ID and creation time to draft, appends it and
// persists. Any ID or CreatedAt on draft is overwritten. The store does not
// validate; that is the caller's job.
func (s *TripStore) Create(ctx context.Context, draft domain.Trip) (domain.Trip, error) {
	trip := draft.Clone()
	trip.ID = s.newID()
	trip.CreatedAt = s.now()
	if trip.Destinations == nil {
		trip.Destinations = []domain.Destination{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clip(s.trips), trip)
	if err := s.commit(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("store.TripStore.Create: %w", err)
	}
	return trip.Clone(), nil
}

// Update shallow-merges patch into the trip with the given ID and persists.
// found is false, and nothing is written, when no such trip exists.
//
// check, when non-nil, sees the merged trip under the write lock; an error
// from it aborts the update unwritten and is returned as is.
func (s *TripStore) Update(ctx context.Context, id string, patch domain.TripPatch, check func(domain.Trip) error) (trip domain.Trip, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return domain.Trip{}, false, nil
	}

	next := slices.Clone(s.trips)
	next[i] = patch.Apply(next[i])
	if next[i].Destinations == nil {
		next[i].Destinations = []domain.Destination{}
	}
	if check != nil {
		if err := check(next[i].Clone()); err != nil {
			return domain.Trip{}, true, err
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.Trip{}, true, fmt.Errorf("store.TripStore.Update: %w", err)
	}
	return next[i].Clone(), true, nil
}

// Delete removes the trip with the given ID and persists. Deleting a trip
// that does not exist is a no-op and reports no error.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.trips), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("store.TripStore.Delete: %w", err)
	}
	return nil
}

// commit writes next to the slot and, only on success, makes it the current
// collection. Callers hold the write lock.
func (s *TripStore) commit(ctx context.Context, next []domain.Trip) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %w", domain.ErrPersistence, err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Error("trip store: write slot failed, change discarded",
			"trips", len(next),
			"error", err,
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	s.trips = next
	return nil
}

func (s *TripStore) index(id string) int {
	return slices.IndexFunc(s.trips, func(t domain.Trip) bool { return t.ID == id })
}
