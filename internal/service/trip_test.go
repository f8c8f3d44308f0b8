package service_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockTripStore is a hand-written test double for service.TripStore.
// Each method is a function field; set only the ones your test needs.
type mockTripStore struct {
	list   func() []domain.Trip
	get    func(id string) (domain.Trip, error)
	create func(ctx context.Context, draft domain.Trip) (domain.Trip, error)
	update func(ctx context.Context, id string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, bool, error)
	delete func(ctx context.Context, id string) error
}

func (m *mockTripStore) List() []domain.Trip {
	return m.list()
}
func (m *mockTripStore) Get(id string) (domain.Trip, error) {
	return m.get(id)
}
func (m *mockTripStore) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockTripStore) Create(ctx context.Context, draft domain.Trip) (domain.Trip, error) {
	return m.create(ctx, draft)
}
func (m *mockTripStore) Update(ctx context.Context, id string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, bool, error) {
	return m.update(ctx, id, patch, check)
}

// compile-time check: mockTripStore must satisfy service.TripStore.
var _ service.TripStore = (*mockTripStore)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Name:      "Summer Trip",
		StartDate: domain.NewDate(2024, 6, 1),
		EndDate:   domain.NewDate(2024, 6, 10),
		Destinations: []domain.Destination{
			{ID: "4", Name: "Paris", Vicinity: "France", Lat: 48.8566, Lng: 2.3522, Duration: 3, Activities: []domain.Activity{}},
		},
	}
}

// echoStore is a store that echoes whatever it receives back; useful for
// tests that only care about validation logic.
func echoStore() *mockTripStore {
	return &mockTripStore{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = "trip-1"
			return t, nil
		},
	}
}

func newTripService(s service.TripStore) *service.TripService {
	return service.NewTripService(s, itinerary.NewImagePicker(rand.NewPCG(1, 1)))
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := newTripService(echoStore())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "trip-1", got.ID)
	assert.Equal(t, "Summer Trip", got.Name)
}

func TestTripService_Create_TrimsName(t *testing.T) {
	svc := newTripService(echoStore())

	trip := validTrip()
	trip.Name = "  Summer Trip  "

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Summer Trip", got.Name)
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
		msg    string
	}{
		{"blank name", func(tr *domain.Trip) { tr.Name = "   " }, "Please enter a trip name."},
		{"missing start", func(tr *domain.Trip) { tr.StartDate = domain.Date{} }, "Please select a start date."},
		{"missing end", func(tr *domain.Trip) { tr.EndDate = domain.Date{} }, "Please select an end date."},
		{"end before start", func(tr *domain.Trip) { tr.EndDate = domain.NewDate(2024, 5, 31) }, "End date must be after start date."},
		{"no destinations", func(tr *domain.Trip) { tr.Destinations = nil }, "Please add at least one destination."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			st := &mockTripStore{
				create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
					called = true
					return tr, nil
				},
			}
			svc := newTripService(st)

			trip := validTrip()
			tc.mutate(&trip)
			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.msg, domain.ValidationMessage(err))
			assert.False(t, called, "invalid trips must not reach the store")
		})
	}
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := newTripService(echoStore())

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RejectsRepeatedIDs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
		msg    string
	}{
		{
			"same destination twice",
			func(tr *domain.Trip) { tr.Destinations = append(tr.Destinations, tr.Destinations[0]) },
			domain.ErrDuplicateDestination.Error(),
		},
		{
			"same activity twice in a destination",
			func(tr *domain.Trip) {
				tr.Destinations[0].Activities = []domain.Activity{{ID: "a1", Name: "Louvre"}, {ID: "a1", Name: "Orsay"}}
			},
			"Each activity in a destination must have its own id.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			st := &mockTripStore{
				create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) {
					called = true
					return tr, nil
				},
			}
			svc := newTripService(st)

			trip := validTrip()
			tc.mutate(&trip)
			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.msg, domain.ValidationMessage(err))
			assert.False(t, called)
		})
	}
}

func TestTripService_Create_DuplicateDestinationIsDistinguishable(t *testing.T) {
	svc := newTripService(echoStore())

	trip := validTrip()
	trip.Destinations = append(trip.Destinations, trip.Destinations[0])
	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrDuplicateDestination)
}

func TestTripService_Create_AssignsMissingActivityIDs(t *testing.T) {
	svc := newTripService(echoStore())

	trip := validTrip()
	trip.Destinations[0].Activities = []domain.Activity{{Name: "Louvre"}, {Name: "Orsay"}, {ID: "a9", Name: "Seine"}}
	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	acts := got.Destinations[0].Activities
	require.Len(t, acts, 3)
	assert.NotEmpty(t, acts[0].ID)
	assert.NotEmpty(t, acts[1].ID)
	assert.NotEqual(t, acts[0].ID, acts[1].ID)
	assert.Equal(t, "a9", acts[2].ID, "existing ids are kept")
	assert.Empty(t, trip.Destinations[0].Activities[0].ID, "caller's trip is untouched")
}

func TestTripService_Create_StoreError(t *testing.T) {
	st := &mockTripStore{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrPersistence
		},
	}
	svc := newTripService(st)

	_, err := svc.Create(context.Background(), validTrip())

	// The service should propagate store errors unchanged.
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ---- Get / List tests ------------------------------------------------------

func TestTripService_Get_NotFound(t *testing.T) {
	st := &mockTripStore{
		get: func(string) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}
	svc := newTripService(st)

	_, err := svc.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_Empty(t *testing.T) {
	st := &mockTripStore{list: func() []domain.Trip { return nil }}
	svc := newTripService(st)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	// Should return an empty slice, not nil; callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

// storedTripStore holds one trip and merges patches into it the way
// store.TripStore does: check runs on the merged trip and a failing check
// leaves the trip unwritten. The returned pointer records the last patch
// that was committed.
func storedTripStore(stored domain.Trip) (*mockTripStore, *domain.TripPatch) {
	var seen domain.TripPatch
	return &mockTripStore{
		get: func(id string) (domain.Trip, error) {
			if id != stored.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return stored, nil
		},
		update: func(_ context.Context, id string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, bool, error) {
			if id != stored.ID {
				return domain.Trip{}, false, nil
			}
			next := patch.Apply(stored)
			if check != nil {
				if err := check(next); err != nil {
					return domain.Trip{}, true, err
				}
			}
			seen = patch
			stored = next
			return next, true, nil
		},
	}, &seen
}

func TestTripService_Update_Valid(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, seen := storedTripStore(stored)
	svc := newTripService(st)

	name := "  Renamed Trip "
	got, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Renamed Trip", got.Name)
	require.NotNil(t, seen.Name)
	assert.Equal(t, "Renamed Trip", *seen.Name)
	assert.Nil(t, seen.StartDate)
}

func TestTripService_Update_ValidatesMergedTrip(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, seen := storedTripStore(stored)
	svc := newTripService(st)

	// Valid on its own, but before the stored start date.
	end := domain.NewDate(2024, 5, 1)
	_, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{EndDate: &end})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "End date must be after start date.", domain.ValidationMessage(err))
	assert.Nil(t, seen.EndDate, "nothing committed")
}

func TestTripService_Update_ChecksTheTripTheStoreHolds(t *testing.T) {
	// Get would report a trip ending on the 30th, but by the time the store
	// merges the patch another writer has moved the end to the 10th.
	reported := validTrip()
	reported.ID = "trip-1"
	reported.EndDate = domain.NewDate(2024, 6, 30)
	current := validTrip()
	current.ID = "trip-1"

	committed := false
	st := &mockTripStore{
		get: func(string) (domain.Trip, error) { return reported, nil },
		update: func(_ context.Context, _ string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, bool, error) {
			require.NotNil(t, check, "the store must be handed the validation rules")
			next := patch.Apply(current)
			if err := check(next); err != nil {
				return domain.Trip{}, true, err
			}
			committed = true
			return next, true, nil
		},
	}
	svc := newTripService(st)

	start := domain.NewDate(2024, 6, 20)
	_, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{StartDate: &start})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "End date must be after start date.", domain.ValidationMessage(err))
	assert.False(t, committed)
}

func TestTripService_Update_RejectsRepeatedIDs(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, seen := storedTripStore(stored)
	svc := newTripService(st)

	dests := []domain.Destination{stored.Destinations[0], stored.Destinations[0]}
	_, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{Destinations: &dests})

	assert.ErrorIs(t, err, domain.ErrDuplicateDestination)
	assert.Equal(t, domain.ErrDuplicateDestination.Error(), domain.ValidationMessage(err))

	dests = []domain.Destination{stored.Destinations[0]}
	dests[0].Activities = []domain.Activity{{ID: "a1"}, {ID: "a1"}}
	_, err = svc.Update(context.Background(), "trip-1", domain.TripPatch{Destinations: &dests})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Each activity in a destination must have its own id.", domain.ValidationMessage(err))
	assert.Nil(t, seen.Destinations, "nothing committed")
}

func TestTripService_Update_AssignsMissingActivityIDs(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, _ := storedTripStore(stored)
	svc := newTripService(st)

	dests := []domain.Destination{stored.Destinations[0]}
	dests[0].Activities = []domain.Activity{{Name: "Louvre"}, {Name: "Orsay"}}
	got, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{Destinations: &dests})

	require.NoError(t, err)
	acts := got.Destinations[0].Activities
	require.Len(t, acts, 2)
	assert.NotEmpty(t, acts[0].ID)
	assert.NotEqual(t, acts[0].ID, acts[1].ID)
	assert.Empty(t, dests[0].Activities[0].ID, "caller's patch is untouched")
}

func TestTripService_Update_NotFound(t *testing.T) {
	st, _ := storedTripStore(domain.Trip{ID: "trip-1"})
	svc := newTripService(st)

	name := "X"
	_, err := svc.Update(context.Background(), "nope", domain.TripPatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Update_StoreError(t *testing.T) {
	st := &mockTripStore{
		update: func(context.Context, string, domain.TripPatch, func(domain.Trip) error) (domain.Trip, bool, error) {
			return domain.Trip{}, true, domain.ErrPersistence
		},
	}
	svc := newTripService(st)

	name := "X"
	_, err := svc.Update(context.Background(), "trip-1", domain.TripPatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_PropagatesPersistenceError(t *testing.T) {
	st := &mockTripStore{
		delete: func(context.Context, string) error { return errors.Join(domain.ErrPersistence, errors.New("disk full")) },
	}
	svc := newTripService(st)

	err := svc.Delete(context.Background(), "trip-1")

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ---- Summary / Map tests ---------------------------------------------------

func TestTripService_Summary(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, _ := storedTripStore(stored)
	svc := newTripService(st)

	got, err := svc.Summary(context.Background(), "trip-1")

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, "Jun 1 - Jun 10, 2024", got.DateRange)

	_, err = svc.Summary(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Map(t *testing.T) {
	stored := validTrip()
	stored.ID = "trip-1"
	st, _ := storedTripStore(stored)
	svc := newTripService(st)

	got, err := svc.Map(context.Background(), "trip-1")

	require.NoError(t, err)
	assert.Equal(t, itinerary.ZoomCity, got.Zoom)
	assert.Equal(t, itinerary.LatLng{Lat: 48.8566, Lng: 2.3522}, got.Center)
}
