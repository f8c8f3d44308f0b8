package itinerary

import "github.com/pkordes/trip-planner/backend/internal/domain"

// Summary is the derived overview shown on a trip card.
type Summary struct {
	TotalDays        int     `json:"total_days"`
	DaysLabel        string  `json:"days_label"`
	DestinationCount int     `json:"destination_count"`
	ActivityCount    int     `json:"activity_count"`
	DateRange        string  `json:"date_range"`
	StartDateLong    string  `json:"start_date_long"`
	EndDateLong      string  `json:"end_date_long"`
	Image            string  `json:"image"`
	RouteKm          float64 `json:"route_km"`
}

// Summarize derives a Summary from trip, choosing its image with picker.
func Summarize(trip domain.Trip, picker *ImagePicker) Summary {
	days := TotalDuration(trip)
	s := Summary{
		TotalDays:        days,
		DaysLabel:        DaysLabel(days),
		DestinationCount: len(trip.Destinations),
		ActivityCount:    ActivityCount(trip.Destinations),
		StartDateLong:    FormatDateLong(trip.StartDate),
		EndDateLong:      FormatDateLong(trip.EndDate),
		Image:            picker.Pick(trip.Destinations),
		RouteKm:          RouteDistance(trip.Destinations),
	}
	if !trip.StartDate.IsZero() && !trip.EndDate.IsZero() {
		s.DateRange = FormatDateRange(trip.StartDate, trip.EndDate)
	}
	return s
}
