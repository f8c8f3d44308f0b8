// Package itinerary derives display values from a trip: durations, counts,
// formatted dates, an illustrative image, and the map view model.
// Everything here is a pure function of its input; nothing is stored.
package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TotalDuration sums the destination durations of a trip, counting a
// missing duration as one day. A trip with no destinations spans zero days.
func TotalDuration(trip domain.Trip) int {
	return SumDurations(trip.Destinations)
}

// SumDurations is TotalDuration for a bare destination list, as held by a
// draft before it becomes a trip.
func SumDurations(dests []domain.Destination) int {
	total := 0
	for _, d := range dests {
		total += d.EffectiveDuration()
	}
	return total
}

// ActivityCount returns the number of activities across all destinations.
func ActivityCount(dests []domain.Destination) int {
	n := 0
	for _, d := range dests {
		n += len(d.Activities)
	}
	return n
}

// DaysLabel renders a day count as "1 day" or "N days".
func DaysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
