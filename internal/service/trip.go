// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate store
// calls. Persistence details live behind the store; services only see the
// TripStore interface.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// TripStore is the persistence surface the services depend on.
// *store.TripStore satisfies it.
type TripStore interface {
	List() []domain.Trip
	Get(id string) (domain.Trip, error)
	Create(ctx context.Context, draft domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, id string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, bool, error)
	Delete(ctx context.Context, id string) error
}

// User-facing validation messages.
const (
	msgNameRequired         = "Please enter a trip name."
	msgStartDateRequired    = "Please select a start date."
	msgEndDateRequired      = "Please select an end date."
	msgEndBeforeStart       = "End date must be after start date."
	msgDestinationsRequired = "Please add at least one destination."
	msgDuplicateActivity    = "Each activity in a destination must have its own id."
)

// TripService implements business logic for Trip operations.
type TripService struct {
	store  TripStore
	images *itinerary.ImagePicker
	newID  func() string
}

// NewTripService constructs a TripService backed by the provided store.
// images picks the summary picture; nil uses an unseeded picker.
func NewTripService(s TripStore, images *itinerary.ImagePicker) *TripService {
	if images == nil {
		images = itinerary.NewImagePicker(nil)
	}
	return &TripService{
		store:  s,
		images: images,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if the trip violates a business rule.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Clone()
	s.assignIDs(trip.Destinations)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	trip.Name = strings.TrimSpace(trip.Name)
	result, err := s.store.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single trip by ID.
// Returns domain.ErrNotFound if no trip has that ID.
func (s *TripService) Get(ctx context.Context, id string) (domain.Trip, error) {
	result, err := s.store.Get(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return result, nil
}

// List returns all trips in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips := s.store.List()
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Update merges patch into the trip and persists the result. The merged trip
// must satisfy the same rules as a new one; it is checked by the store under
// its write lock, so concurrent patches are validated against each other.
// Returns domain.ErrNotFound if no trip has that ID.
func (s *TripService) Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Destinations != nil {
		dests := domain.CloneDestinations(*patch.Destinations)
		s.assignIDs(dests)
		patch.Destinations = &dests
	}

	result, found, err := s.store.Update(ctx, id, patch, validateTrip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
	}
	return result, nil
}

// Delete removes a trip by ID. Deleting an unknown trip is not an error.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Summary returns the derived overview of a trip.
func (s *TripService) Summary(ctx context.Context, id string) (itinerary.Summary, error) {
	trip, err := s.store.Get(id)
	if err != nil {
		return itinerary.Summary{}, fmt.Errorf("service.TripService.Summary: %w", err)
	}
	return itinerary.Summarize(trip, s.images), nil
}

// Map returns the map view of a trip's destinations.
func (s *TripService) Map(ctx context.Context, id string) (itinerary.MapView, error) {
	trip, err := s.store.Get(id)
	if err != nil {
		return itinerary.MapView{}, fmt.Errorf("service.TripService.Map: %w", err)
	}
	return itinerary.NewMapView(trip.Destinations, itinerary.ZoomDefault), nil
}

// validateTrip checks the rules a trip must satisfy before it is stored.
// The first violated rule wins.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return invalid(msgNameRequired)
	}
	if trip.StartDate.IsZero() {
		return invalid(msgStartDateRequired)
	}
	if trip.EndDate.IsZero() {
		return invalid(msgEndDateRequired)
	}
	// A one-day trip (start == end) is valid.
	if trip.StartDate.After(trip.EndDate.Time) {
		return invalid(msgEndBeforeStart)
	}
	if len(trip.Destinations) == 0 {
		return invalid(msgDestinationsRequired)
	}

	destIDs := make(map[string]struct{}, len(trip.Destinations))
	for _, d := range trip.Destinations {
		if _, dup := destIDs[d.ID]; dup {
			return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrDuplicateDestination)
		}
		destIDs[d.ID] = struct{}{}

		actIDs := make(map[string]struct{}, len(d.Activities))
		for _, a := range d.Activities {
			if _, dup := actIDs[a.ID]; dup {
				return invalid(msgDuplicateActivity)
			}
			actIDs[a.ID] = struct{}{}
		}
	}
	return nil
}

// assignIDs gives every destination and activity that arrived without an ID
// a fresh one, in place.
func (s *TripService) assignIDs(dests []domain.Destination) {
	for i := range dests {
		if dests[i].ID == "" {
			dests[i].ID = s.newID()
		}
		for j := range dests[i].Activities {
			if dests[i].Activities[j].ID == "" {
				dests[i].Activities[j].ID = s.newID()
			}
		}
	}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
