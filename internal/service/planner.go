package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// Duration bounds for a destination in a draft, in days.
const (
	MinDuration = 1
	MaxDuration = 30
)

// DuplicateNoticeTTL is how long the duplicate-destination notice stays visible.
const DuplicateNoticeTTL = 3 * time.Second

const (
	msgActivityRequired = "Please enter an activity name."
	msgNoSingleMatch    = "Please pick one destination from the search results."
	msgSaveFailed       = "Failed to save trip. Please try again."
)

// TripCreator persists a finished draft. *TripService satisfies it.
type TripCreator interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

// DraftDetails is the header of a draft: everything except the itinerary.
type DraftDetails struct {
	Name      string
	StartDate *domain.Date
	EndDate   *domain.Date
}

// DestinationRef names a catalog entry either by ID or by a search query
// that must resolve to exactly one entry. EntryID wins when both are set.
type DestinationRef struct {
	EntryID string
	Query   string
}

// PlannerService holds trips under construction. Drafts live in memory only
// and disappear when saved, discarded, or when the process exits.
// Safe for concurrent use.
type PlannerService struct {
	trips TripCreator

	mu     sync.Mutex
	drafts map[string]*domain.Draft

	now   func() time.Time
	newID func() string
}

// PlannerOption configures a PlannerService.
type PlannerOption func(*PlannerService)

// WithPlannerClock overrides the clock used for timestamps and notice expiry.
func WithPlannerClock(now func() time.Time) PlannerOption {
	return func(p *PlannerService) { p.now = now }
}

// WithPlannerIDs overrides how draft and activity IDs are minted.
func WithPlannerIDs(newID func() string) PlannerOption {
	return func(p *PlannerService) { p.newID = newID }
}

// NewPlannerService constructs a PlannerService that saves through trips.
func NewPlannerService(trips TripCreator, opts ...PlannerOption) *PlannerService {
	p := &PlannerService{
		trips:  trips,
		drafts: map[string]*domain.Draft{},
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create starts a new draft with the given details and no destinations.
func (p *PlannerService) Create(ctx context.Context, details DraftDetails) (domain.Draft, error) {
	d := &domain.Draft{
		ID:           p.newID(),
		Destinations: []domain.Destination{},
		CreatedAt:    p.now(),
	}
	applyDetails(d, details)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.drafts[d.ID] = d
	return p.view(d), nil
}

// Get returns a draft with its currently visible notice.
// Returns domain.ErrNotFound if no draft has that ID.
func (p *PlannerService) Get(ctx context.Context, id string) (domain.Draft, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.drafts[id]
	if !ok {
		return domain.Draft{}, fmt.Errorf("service.PlannerService.Get: %w", domain.ErrNotFound)
	}
	return p.view(d), nil
}

// List returns every open draft, oldest first.
func (p *PlannerService) List(ctx context.Context) []domain.Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Draft, 0, len(p.drafts))
	for _, id := range slices.Sorted(maps.Keys(p.drafts)) {
		out = append(out, p.view(p.drafts[id]))
	}
	slices.SortStableFunc(out, func(a, b domain.Draft) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// SetDetails replaces the name and dates of a draft. Missing dates clear the
// stored ones.
func (p *PlannerService) SetDetails(ctx context.Context, id string, details DraftDetails) (domain.Draft, error) {
	return p.mutate(id, "SetDetails", func(d *domain.Draft) error {
		applyDetails(d, details)
		return nil
	})
}

// Discard drops a draft. Discarding an unknown draft is not an error.
func (p *PlannerService) Discard(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.drafts, id)
	return nil
}

// AddDestination appends the referenced catalog entry to the draft's
// itinerary. An entry already in the draft is rejected with
// domain.ErrDuplicateDestination and a notice that fades after
// DuplicateNoticeTTL; the itinerary is left unchanged.
func (p *PlannerService) AddDestination(ctx context.Context, id string, ref DestinationRef) (domain.Draft, error) {
	return p.mutate(id, "AddDestination", func(d *domain.Draft) error {
		entry, err := resolveEntry(ref)
		if err != nil {
			return err
		}
		dest := catalog.Select(entry)
		if d.FindDestination(dest.ID) >= 0 {
			return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrDuplicateDestination)
		}
		d.Destinations = append(d.Destinations, dest)
		return nil
	})
}

// SetDuration sets how many days the trip spends at a destination, clamped
// to [MinDuration, MaxDuration].
func (p *PlannerService) SetDuration(ctx context.Context, id, destID string, days int) (domain.Draft, error) {
	return p.mutate(id, "SetDuration", func(d *domain.Draft) error {
		i := d.FindDestination(destID)
		if i < 0 {
			return domain.NotFound("destination", destID)
		}
		d.Destinations[i].Duration = min(max(days, MinDuration), MaxDuration)
		return nil
	})
}

// RemoveDestination drops a destination from the itinerary. Removing an
// unknown destination leaves the draft unchanged.
func (p *PlannerService) RemoveDestination(ctx context.Context, id, destID string) (domain.Draft, error) {
	return p.mutate(id, "RemoveDestination", func(d *domain.Draft) error {
		d.Destinations = slices.DeleteFunc(d.Destinations, func(dest domain.Destination) bool {
			return dest.ID == destID
		})
		return nil
	})
}

// AddActivity appends a named activity to a destination. Blank names are
// rejected.
func (p *PlannerService) AddActivity(ctx context.Context, id, destID, name string) (domain.Draft, error) {
	return p.mutate(id, "AddActivity", func(d *domain.Draft) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return invalid(msgActivityRequired)
		}
		i := d.FindDestination(destID)
		if i < 0 {
			return domain.NotFound("destination", destID)
		}
		d.Destinations[i].Activities = append(d.Destinations[i].Activities, domain.Activity{
			ID:   p.newID(),
			Name: name,
		})
		return nil
	})
}

// RemoveActivity drops an activity from a destination. Removing an unknown
// activity leaves the draft unchanged.
func (p *PlannerService) RemoveActivity(ctx context.Context, id, destID, activityID string) (domain.Draft, error) {
	return p.mutate(id, "RemoveActivity", func(d *domain.Draft) error {
		i := d.FindDestination(destID)
		if i < 0 {
			return domain.NotFound("destination", destID)
		}
		d.Destinations[i].Activities = slices.DeleteFunc(d.Destinations[i].Activities, func(a domain.Activity) bool {
			return a.ID == activityID
		})
		return nil
	})
}

// Map returns the map view of a draft's itinerary.
func (p *PlannerService) Map(ctx context.Context, id string) (itinerary.MapView, error) {
	d, err := p.Get(ctx, id)
	if err != nil {
		return itinerary.MapView{}, fmt.Errorf("service.PlannerService.Map: %w", err)
	}
	zoom := itinerary.ZoomPlanner
	if len(d.Destinations) == 0 {
		zoom = itinerary.ZoomPlannerEmpty
	}
	return itinerary.NewMapView(d.Destinations, zoom), nil
}

// Save validates the draft, creates a trip from it, and discards the draft.
// On failure the draft is kept and carries a notice explaining why.
func (p *PlannerService) Save(ctx context.Context, id string) (domain.Trip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.drafts[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.PlannerService.Save: %w", domain.ErrNotFound)
	}

	trip := domain.Trip{
		Name:         d.Name,
		Destinations: domain.CloneDestinations(d.Destinations),
	}
	if d.StartDate != nil {
		trip.StartDate = *d.StartDate
	}
	if d.EndDate != nil {
		trip.EndDate = *d.EndDate
	}

	created, err := p.trips.Create(ctx, trip)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			p.notify(d, domain.ValidationMessage(err), time.Time{})
		case errors.Is(err, domain.ErrPersistence):
			p.notify(d, msgSaveFailed, time.Time{})
		}
		return domain.Trip{}, fmt.Errorf("service.PlannerService.Save: %w", err)
	}
	delete(p.drafts, id)
	return created, nil
}

// mutate runs fn against the stored draft under the lock. fn either succeeds,
// clearing any notice, or fails with the draft's fields untouched; a
// validation failure becomes the draft's notice.
func (p *PlannerService) mutate(id, op string, fn func(d *domain.Draft) error) (domain.Draft, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.drafts[id]
	if !ok {
		return domain.Draft{}, fmt.Errorf("service.PlannerService.%s: %w", op, domain.ErrNotFound)
	}

	work := cloneDraft(d)
	if err := fn(&work); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			var expires time.Time
			if errors.Is(err, domain.ErrDuplicateDestination) {
				expires = p.now().Add(DuplicateNoticeTTL)
			}
			p.notify(d, domain.ValidationMessage(err), expires)
		}
		return domain.Draft{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}
	work.Notice = ""
	work.NoticeExpiresAt = time.Time{}
	*d = work
	return p.view(d), nil
}

func (p *PlannerService) notify(d *domain.Draft, msg string, expires time.Time) {
	d.Notice = msg
	d.NoticeExpiresAt = expires
}

// view returns a caller-owned copy of d with an expired notice cleared.
func (p *PlannerService) view(d *domain.Draft) domain.Draft {
	out := cloneDraft(d)
	if out.ActiveNotice(p.now()) == "" {
		out.Notice = ""
		out.NoticeExpiresAt = time.Time{}
	}
	return out
}

func cloneDraft(d *domain.Draft) domain.Draft {
	out := *d
	out.Destinations = domain.CloneDestinations(d.Destinations)
	if out.Destinations == nil {
		out.Destinations = []domain.Destination{}
	}
	if d.StartDate != nil {
		start := *d.StartDate
		out.StartDate = &start
	}
	if d.EndDate != nil {
		end := *d.EndDate
		out.EndDate = &end
	}
	return out
}

func applyDetails(d *domain.Draft, details DraftDetails) {
	d.Name = details.Name
	d.StartDate = nil
	d.EndDate = nil
	if details.StartDate != nil {
		start := *details.StartDate
		d.StartDate = &start
	}
	if details.EndDate != nil {
		end := *details.EndDate
		d.EndDate = &end
	}
}

func resolveEntry(ref DestinationRef) (domain.CatalogEntry, error) {
	if ref.EntryID != "" {
		entry, ok := catalog.Lookup(ref.EntryID)
		if !ok {
			return domain.CatalogEntry{}, domain.NotFound("catalog entry", ref.EntryID)
		}
		return entry, nil
	}
	entry, ok := catalog.Resolve(ref.Query)
	if !ok {
		return domain.CatalogEntry{}, invalid(msgNoSingleMatch)
	}
	return entry, nil
}
