package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// catalogEntryJSON is the wire form of a catalog entry.
type catalogEntryJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Vicinity string  `json:"vicinity"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// catalogListResponse wraps a list of entries.
type catalogListResponse struct {
	Data []catalogEntryJSON `json:"data"`
}

// catalogAllResponse is the response body for GET /catalog/all.
type catalogAllResponse struct {
	Data  []catalogEntryJSON `json:"data"`
	Total int                `json:"total"`
}

// maxPopular bounds ?n= on GET /catalog/popular.
const maxPopular = 50

// SearchCatalog handles GET /catalog?q=.
// A blank or missing query returns an empty list, not the whole catalog.
func (s *Server) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entriesToResponse(catalog.Search(r.URL.Query().Get("q"))))
}

// PopularCatalog handles GET /catalog/popular?n=.
// n defaults to catalog.DefaultPopular.
func (s *Server) PopularCatalog(w http.ResponseWriter, r *http.Request) {
	n := catalog.DefaultPopular
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > maxPopular {
			writeError(w, http.StatusUnprocessableEntity, codeValidation,
				"n must be an integer between 0 and "+strconv.Itoa(maxPopular))
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, entriesToResponse(catalog.Popular(n)))
}

// ListCatalog handles GET /catalog/all: every entry in catalog order.
func (s *Server) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogAllResponse{
		Data:  entriesToResponse(catalog.All()).Data,
		Total: catalog.Len(),
	})
}

// GetCatalogEntry handles GET /catalog/{entryId}.
func (s *Server) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := catalog.Lookup(chi.URLParam(r, "entryId"))
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "catalog entry not found")
		return
	}
	writeJSON(w, http.StatusOK, entryToResponse(e))
}

// --- mapping helpers --------------------------------------------------------

func entryToResponse(e domain.CatalogEntry) catalogEntryJSON {
	return catalogEntryJSON{ID: e.ID, Name: e.Name, Vicinity: e.Vicinity, Lat: e.Lat, Lng: e.Lng}
}

func entriesToResponse(entries []domain.CatalogEntry) catalogListResponse {
	data := make([]catalogEntryJSON, len(entries))
	for i, e := range entries {
		data[i] = entryToResponse(e)
	}
	return catalogListResponse{Data: data}
}
