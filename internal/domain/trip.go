// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (store, service, handler)
// and depends only on small value-type libraries.
package domain

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar date serialized as "2006-01-02".
type Date = openapi_types.Date

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Trip is a named travel plan with a date range and an ordered itinerary.
// A trip is the top-level aggregate; destinations belong to exactly one trip.
type Trip struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	StartDate    Date          `json:"startDate"`
	EndDate      Date          `json:"endDate"`
	Destinations []Destination `json:"destinations"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Destination is a place added to a trip. Its coordinates are copied from the
// catalog when selected and never recomputed.
type Destination struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Vicinity   string     `json:"vicinity"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Duration   int        `json:"duration"` // days; zero counts as one
	Activities []Activity `json:"activities"`
}

// Activity is a free-text task or note attached to a destination.
type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TripPatch carries a partial update. Each non-nil field fully replaces the
// stored value; nil fields are left untouched. ID and CreatedAt are immutable
// and therefore absent.
type TripPatch struct {
	Name         *string
	StartDate    *Date
	EndDate      *Date
	Destinations *[]Destination
}

// Apply returns a copy of t with the patch merged in.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Destinations != nil {
		t.Destinations = CloneDestinations(*p.Destinations)
	}
	return t
}

// Clone returns a deep copy of t so the caller owns every nested slice.
func (t Trip) Clone() Trip {
	t.Destinations = CloneDestinations(t.Destinations)
	return t
}

// CloneDestinations deep-copies a destination list, preserving nil-ness
// of the outer slice and normalizing nil activity lists to empty ones.
func CloneDestinations(in []Destination) []Destination {
	if in == nil {
		return nil
	}
	out := make([]Destination, len(in))
	for i, d := range in {
		d.Activities = append([]Activity{}, d.Activities...)
		out[i] = d
	}
	return out
}

// EffectiveDuration returns the number of days a destination occupies.
// A missing (zero or negative) duration counts as a single day.
func (d Destination) EffectiveDuration() int {
	if d.Duration <= 0 {
		return 1
	}
	return d.Duration
}
