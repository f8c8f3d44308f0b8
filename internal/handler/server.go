// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, draft.go, etc.) but all share the same Server
// struct so they can access its dependencies. Routes mounts them on chi.
package handler

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, id string) (itinerary.Summary, error)
	Map(ctx context.Context, id string) (itinerary.MapView, error)
}

// PlannerServicer defines the draft operations the planner handlers depend on.
type PlannerServicer interface {
	Create(ctx context.Context, details service.DraftDetails) (domain.Draft, error)
	Get(ctx context.Context, id string) (domain.Draft, error)
	List(ctx context.Context) []domain.Draft
	SetDetails(ctx context.Context, id string, details service.DraftDetails) (domain.Draft, error)
	Discard(ctx context.Context, id string) error
	AddDestination(ctx context.Context, id string, ref service.DestinationRef) (domain.Draft, error)
	SetDuration(ctx context.Context, id, destID string, days int) (domain.Draft, error)
	RemoveDestination(ctx context.Context, id, destID string) (domain.Draft, error)
	AddActivity(ctx context.Context, id, destID, name string) (domain.Draft, error)
	RemoveActivity(ctx context.Context, id, destID, activityID string) (domain.Draft, error)
	Map(ctx context.Context, id string) (itinerary.MapView, error)
	Save(ctx context.Context, id string) (domain.Trip, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips      TripServicer
	planner    PlannerServicer
	export     ExportServicer
	mapsAPIKey string

	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// mapsAPIKey is passed through unchanged in map responses; it may be empty.
// Any service may be nil when a test only exercises the others.
func NewServer(trips TripServicer, planner PlannerServicer, export ExportServicer, mapsAPIKey string) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		trips:      trips,
		planner:    planner,
		export:     export,
		mapsAPIKey: mapsAPIKey,
		validate:   v,
		logger:     slog.Default(),
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, "")
}

// Routes returns a router with every endpoint mounted. It carries no
// middleware; main.go applies that around it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.SearchCatalog)
		r.Get("/popular", s.PopularCatalog)
		r.Get("/all", s.ListCatalog)
		r.Get("/{entryId}", s.GetCatalogEntry)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/summary", s.GetTripSummary)
			r.Get("/map", s.GetTripMap)
		})
	})

	r.Get("/export", s.GetExport)

	r.Route("/drafts", func(r chi.Router) {
		r.Get("/", s.ListDrafts)
		r.Post("/", s.CreateDraft)
		r.Route("/{draftId}", func(r chi.Router) {
			r.Get("/", s.GetDraft)
			r.Put("/", s.UpdateDraft)
			r.Delete("/", s.DeleteDraft)
			r.Get("/map", s.GetDraftMap)
			r.Post("/save", s.SaveDraft)
			r.Post("/destinations", s.AddDraftDestination)
			r.Route("/destinations/{destId}", func(r chi.Router) {
				r.Patch("/", s.UpdateDraftDestination)
				r.Delete("/", s.DeleteDraftDestination)
				r.Post("/activities", s.AddDraftActivity)
				r.Delete("/activities/{activityId}", s.DeleteDraftActivity)
			})
		})
	})

	return r
}
