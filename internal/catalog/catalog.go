// Package catalog holds the fixed reference list of searchable destinations.
// The table is declared once and never mutated; every function returns copies.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultPopular is the size of the popular sample shown next to search.
const DefaultPopular = 6

// DefaultDuration is the number of days a freshly selected destination spans.
const DefaultDuration = 1

// entries is the catalog in declaration order. Order is meaningful: search
// results and the popular sample both follow it.
var entries = []domain.CatalogEntry{
	{ID: "1", Name: "New York City", Vicinity: "New York, USA", Lat: 40.7128, Lng: -74.0060},
	{ID: "2", Name: "London", Vicinity: "United Kingdom", Lat: 51.5074, Lng: -0.1278},
	{ID: "3", Name: "Tokyo", Vicinity: "Japan", Lat: 35.6762, Lng: 139.6503},
	{ID: "4", Name: "Paris", Vicinity: "France", Lat: 48.8566, Lng: 2.3522},
	{ID: "5", Name: "Sydney", Vicinity: "Australia", Lat: -33.8688, Lng: 151.2093},
	{ID: "6", Name: "Rome", Vicinity: "Italy", Lat: 41.9028, Lng: 12.4964},
	{ID: "7", Name: "Bangkok", Vicinity: "Thailand", Lat: 13.7563, Lng: 100.5018},
	{ID: "8", Name: "Cairo", Vicinity: "Egypt", Lat: 30.0444, Lng: 31.2357},
	{ID: "9", Name: "Rio de Janeiro", Vicinity: "Brazil", Lat: -22.9068, Lng: -43.1729},
	{ID: "10", Name: "Dubai", Vicinity: "United Arab Emirates", Lat: 25.2048, Lng: 55.2708},
	{ID: "11", Name: "Singapore", Vicinity: "Singapore", Lat: 1.3521, Lng: 103.8198},
	{ID: "12", Name: "Hong Kong", Vicinity: "China", Lat: 22.3193, Lng: 114.1694},
	{ID: "13", Name: "Las Vegas", Vicinity: "Nevada, USA", Lat: 36.1699, Lng: -115.1398},
	{ID: "14", Name: "Barcelona", Vicinity: "Spain", Lat: 41.3851, Lng: 2.1734},
	{ID: "15", Name: "Amsterdam", Vicinity: "Netherlands", Lat: 52.3676, Lng: 4.9041},
}

// All returns every entry in declaration order.
func All() []domain.CatalogEntry {
	return append([]domain.CatalogEntry(nil), entries...)
}

// Len reports the number of catalog entries.
func Len() int { return len(entries) }

// Search returns the entries whose name or vicinity contains query,
// compared case-insensitively. A blank query matches nothing. Results keep
// catalog order; there is no ranking.
func Search(query string) []domain.CatalogEntry {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.CatalogEntry{}
	}
	// A Caser carries state, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	out := []domain.CatalogEntry{}
	for _, e := range entries {
		if strings.Contains(fold.String(e.Name), needle) || strings.Contains(fold.String(e.Vicinity), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Resolve returns the single entry matching query. ok is false when the
// query matches none or more than one entry.
func Resolve(query string) (entry domain.CatalogEntry, ok bool) {
	matches := Search(query)
	if len(matches) != 1 {
		return domain.CatalogEntry{}, false
	}
	return matches[0], true
}

// Popular returns the first n entries in declaration order.
// n <= 0 yields an empty sample; n larger than the catalog yields all of it.
func Popular(n int) []domain.CatalogEntry {
	if n <= 0 {
		return []domain.CatalogEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return append([]domain.CatalogEntry{}, entries[:n]...)
}

// Lookup returns the entry with the given ID.
func Lookup(id string) (domain.CatalogEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.CatalogEntry{}, false
}

// Select turns a catalog entry into a trip destination: display fields and
// coordinates are copied verbatim, the activity list starts empty and the
// duration starts at one day. An entry without an ID gets a fresh one.
func Select(e domain.CatalogEntry) domain.Destination {
	id := e.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	return domain.Destination{
		ID:         id,
		Name:       e.Name,
		Vicinity:   e.Vicinity,
		Lat:        e.Lat,
		Lng:        e.Lng,
		Duration:   DefaultDuration,
		Activities: []domain.Activity{},
	}
}
