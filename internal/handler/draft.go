package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// DraftJSON is the response body for a trip under construction.
type DraftJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	StartDate    *domain.Date      `json:"start_date"`
	EndDate      *domain.Date      `json:"end_date"`
	Destinations []DestinationJSON `json:"destinations"`
	TotalDays    int               `json:"total_days"`
	Notice       string            `json:"notice,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// DraftListResponse is the response body for GET /drafts.
type DraftListResponse struct {
	Data []DraftJSON `json:"data"`
}

// DraftDetailsRequest is the body of POST /drafts and PUT /drafts/{draftId}.
type DraftDetailsRequest struct {
	Name      string       `json:"name" validate:"max=200"`
	StartDate *domain.Date `json:"start_date"`
	EndDate   *domain.Date `json:"end_date"`
}

// AddDestinationRequest is the body of POST /drafts/{draftId}/destinations.
// entry_id picks a catalog entry directly; otherwise query must match
// exactly one entry.
type AddDestinationRequest struct {
	EntryID string `json:"entry_id" validate:"required_without=Query"`
	Query   string `json:"query" validate:"max=100"`
}

// UpdateDestinationRequest is the body of PATCH on a draft destination.
// Out-of-range durations are clamped rather than rejected.
type UpdateDestinationRequest struct {
	Duration *int `json:"duration" validate:"required"`
}

// AddActivityRequest is the body of POST on a destination's activities.
type AddActivityRequest struct {
	Name string `json:"name" validate:"max=200"`
}

// CreateDraft handles POST /drafts. The body is optional.
func (s *Server) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var body DraftDetailsRequest
	if err := s.decodeBody(r, &body, true); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}

	d, err := s.planner.Create(r.Context(), requestToDetails(body))
	if err != nil {
		s.respondError(w, r, err, "draft")
		return
	}
	writeJSON(w, http.StatusCreated, draftToResponse(d))
}

// ListDrafts handles GET /drafts. Drafts are listed oldest first.
func (s *Server) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts := s.planner.List(r.Context())
	data := make([]DraftJSON, len(drafts))
	for i, d := range drafts {
		data[i] = draftToResponse(d)
	}
	writeJSON(w, http.StatusOK, DraftListResponse{Data: data})
}

// GetDraft handles GET /drafts/{draftId}.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.planner.Get(r.Context(), chi.URLParam(r, "draftId"))
	s.respondDraft(w, r, d, err)
}

// UpdateDraft handles PUT /drafts/{draftId}.
func (s *Server) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var body DraftDetailsRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}

	d, err := s.planner.SetDetails(r.Context(), chi.URLParam(r, "draftId"), requestToDetails(body))
	s.respondDraft(w, r, d, err)
}

// DeleteDraft handles DELETE /drafts/{draftId}.
func (s *Server) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.planner.Discard(r.Context(), chi.URLParam(r, "draftId")); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDraftDestination handles POST /drafts/{draftId}/destinations.
func (s *Server) AddDraftDestination(w http.ResponseWriter, r *http.Request) {
	var body AddDestinationRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}

	ref := service.DestinationRef{EntryID: body.EntryID, Query: body.Query}
	d, err := s.planner.AddDestination(r.Context(), chi.URLParam(r, "draftId"), ref)
	s.respondDraft(w, r, d, err)
}

// UpdateDraftDestination handles PATCH /drafts/{draftId}/destinations/{destId}.
func (s *Server) UpdateDraftDestination(w http.ResponseWriter, r *http.Request) {
	var body UpdateDestinationRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}

	d, err := s.planner.SetDuration(r.Context(),
		chi.URLParam(r, "draftId"), chi.URLParam(r, "destId"), *body.Duration)
	s.respondDraft(w, r, d, err)
}

// DeleteDraftDestination handles DELETE /drafts/{draftId}/destinations/{destId}.
func (s *Server) DeleteDraftDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.planner.RemoveDestination(r.Context(), chi.URLParam(r, "draftId"), chi.URLParam(r, "destId"))
	s.respondDraft(w, r, d, err)
}

// AddDraftActivity handles POST /drafts/{draftId}/destinations/{destId}/activities.
func (s *Server) AddDraftActivity(w http.ResponseWriter, r *http.Request) {
	var body AddActivityRequest
	if err := s.decodeBody(r, &body, false); err != nil {
		s.respondError(w, r, err, "draft")
		return
	}

	d, err := s.planner.AddActivity(r.Context(),
		chi.URLParam(r, "draftId"), chi.URLParam(r, "destId"), body.Name)
	s.respondDraft(w, r, d, err)
}

// DeleteDraftActivity handles
// DELETE /drafts/{draftId}/destinations/{destId}/activities/{activityId}.
func (s *Server) DeleteDraftActivity(w http.ResponseWriter, r *http.Request) {
	d, err := s.planner.RemoveActivity(r.Context(),
		chi.URLParam(r, "draftId"), chi.URLParam(r, "destId"), chi.URLParam(r, "activityId"))
	s.respondDraft(w, r, d, err)
}

// GetDraftMap handles GET /drafts/{draftId}/map.
func (s *Server) GetDraftMap(w http.ResponseWriter, r *http.Request) {
	view, err := s.planner.Map(r.Context(), chi.URLParam(r, "draftId"))
	if err != nil {
		s.respondError(w, r, err, "draft")
		return
	}
	writeJSON(w, http.StatusOK, MapResponse{MapView: view, APIKey: s.mapsAPIKey})
}

// SaveDraft handles POST /drafts/{draftId}/save. On success the draft is
// gone and the new trip is returned.
func (s *Server) SaveDraft(w http.ResponseWriter, r *http.Request) {
	trip, err := s.planner.Save(r.Context(), chi.URLParam(r, "draftId"))
	if err != nil {
		s.respondError(w, r, err, "draft")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

func (s *Server) respondDraft(w http.ResponseWriter, r *http.Request, d domain.Draft, err error) {
	if err != nil {
		s.respondError(w, r, err, "draft")
		return
	}
	writeJSON(w, http.StatusOK, draftToResponse(d))
}

// --- mapping helpers --------------------------------------------------------

func requestToDetails(body DraftDetailsRequest) service.DraftDetails {
	return service.DraftDetails{
		Name:      body.Name,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	}
}

func draftToResponse(d domain.Draft) DraftJSON {
	return DraftJSON{
		ID:           d.ID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Destinations: destinationsToResponse(d.Destinations),
		TotalDays:    itinerary.SumDurations(d.Destinations),
		Notice:       d.Notice,
		CreatedAt:    d.CreatedAt,
	}
}
