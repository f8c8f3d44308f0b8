package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// ActivityJSON is the wire form of an activity.
type ActivityJSON struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"max=200"`
}

// DestinationJSON is the wire form of a destination, used in both
// requests and responses.
type DestinationJSON struct {
	ID         string         `json:"id" validate:"required"`
	Name       string         `json:"name" validate:"required,max=200"`
	Vicinity   string         `json:"vicinity" validate:"max=200"`
	Lat        float64        `json:"lat" validate:"min=-90,max=90"`
	Lng        float64        `json:"lng" validate:"min=-180,max=180"`
	Duration   int            `json:"duration" validate:"min=0,max=365"`
	Activities []ActivityJSON `json:"activities" validate:"dive"`
}

// TripJSON is the response body for a single trip.
type TripJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	StartDate    domain.Date       `json:"start_date"`
	EndDate      domain.Date       `json:"end_date"`
	Destinations []DestinationJSON `json:"destinations"`
	TotalDays    int               `json:"total_days"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TripListResponse is the response body for GET /trips.
type TripListResponse struct {
	Data []TripJSON `json:"data"`
}

// CreateTripRequest is the body of POST /trips. Business rules (name and
// dates present, end not before start) are checked by the service so the
// user sees its messages; only shape is checked here.
type CreateTripRequest struct {
	Name         string            `json:"name" validate:"max=200"`
	StartDate    *domain.Date      `json:"start_date"`
	EndDate      *domain.Date      `json:"end_date"`
	Destinations []DestinationJSON `json:"destinations" validate:"max=100,dive"`
}

// UpdateTripRequest is the body of PATCH /trips/{tripId}. Absent fields are
// left unchanged; present fields replace the stored value entirely.
type UpdateTripRequest struct {
	Name         *string            `json:"name" validate:"omitempty,max=200"`
	StartDate    *domain.Date       `json:"start_date"`
	EndDate      *domain.Date       `json:"end_date"`
	Destinations *[]DestinationJSON `json:"destinations" validate:"omitempty,max=100,dive"`
}

// MapResponse is the response body of the map endpoints.
type MapResponse struct {
	itinerary.MapView
	APIKey string `json:"api_key,omitempty"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "trip")
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body))
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}

	data := make([]TripJSON, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{Data: data})
}

// GetTrip handles GET /trips/{tripId}.
// A miss is a 404; the client is expected to fall back to the trip list.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PATCH /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body UpdateTripRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "trip")
		return
	}

	updated, err := s.trips.Update(r.Context(), chi.URLParam(r, "tripId"), requestToPatch(body))
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
// Deleting a trip that does not exist still answers 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "tripId")); err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripSummary handles GET /trips/{tripId}/summary.
func (s *Server) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.trips.Summary(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetTripMap handles GET /trips/{tripId}/map.
func (s *Server) GetTripMap(w http.ResponseWriter, r *http.Request) {
	view, err := s.trips.Map(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, MapResponse{MapView: view, APIKey: s.mapsAPIKey})
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a domain.Trip.
// Missing dates become zero dates, which the service rejects.
func requestToTrip(body CreateTripRequest) domain.Trip {
	t := domain.Trip{
		Name:         body.Name,
		Destinations: requestToDestinations(body.Destinations),
	}
	if body.StartDate != nil {
		t.StartDate = *body.StartDate
	}
	if body.EndDate != nil {
		t.EndDate = *body.EndDate
	}
	return t
}

// requestToPatch builds a domain.TripPatch, keeping absent fields nil.
func requestToPatch(body UpdateTripRequest) domain.TripPatch {
	p := domain.TripPatch{
		Name:      body.Name,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	}
	if body.Destinations != nil {
		dests := requestToDestinations(*body.Destinations)
		if dests == nil {
			dests = []domain.Destination{}
		}
		p.Destinations = &dests
	}
	return p
}

func requestToDestinations(in []DestinationJSON) []domain.Destination {
	if in == nil {
		return nil
	}
	out := make([]domain.Destination, len(in))
	for i, d := range in {
		acts := make([]domain.Activity, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = domain.Activity{ID: a.ID, Name: a.Name}
		}
		out[i] = domain.Destination{
			ID:         d.ID,
			Name:       d.Name,
			Vicinity:   d.Vicinity,
			Lat:        d.Lat,
			Lng:        d.Lng,
			Duration:   d.Duration,
			Activities: acts,
		}
	}
	return out
}

// tripToResponse converts a domain.Trip into its wire form.
func tripToResponse(t domain.Trip) TripJSON {
	return TripJSON{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Destinations: destinationsToResponse(t.Destinations),
		TotalDays:    itinerary.TotalDuration(t),
		CreatedAt:    t.CreatedAt,
	}
}

func destinationsToResponse(in []domain.Destination) []DestinationJSON {
	out := make([]DestinationJSON, len(in))
	for i, d := range in {
		acts := make([]ActivityJSON, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = ActivityJSON{ID: a.ID, Name: a.Name}
		}
		out[i] = DestinationJSON{
			ID:         d.ID,
			Name:       d.Name,
			Vicinity:   d.Vicinity,
			Lat:        d.Lat,
			Lng:        d.Lng,
			Duration:   d.Duration,
			Activities: acts,
		}
	}
	return out
}
