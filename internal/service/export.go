package service

import (
	"context"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ExportService assembles a full flat export of all trips and destinations.
type ExportService struct {
	store TripStore
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(s TripStore) *ExportService {
	return &ExportService{store: s}
}

// Export returns one ExportRow per destination across all trips, in trip
// order and then itinerary order. Trips with no destinations contribute one
// row with empty destination fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	for _, trip := range s.store.List() {
		base := domain.ExportRow{
			TripID:        trip.ID,
			TripName:      trip.Name,
			TripStartDate: formatISODate(trip.StartDate),
			TripEndDate:   formatISODate(trip.EndDate),
		}
		if len(trip.Destinations) == 0 {
			base.Activities = []string{}
			rows = append(rows, base)
			continue
		}
		for i, d := range trip.Destinations {
			row := base
			row.Position = i + 1
			row.DestinationID = d.ID
			row.DestinationName = d.Name
			row.DestinationVicinity = d.Vicinity
			row.Lat = d.Lat
			row.Lng = d.Lng
			row.Duration = d.EffectiveDuration()
			row.Activities = make([]string, len(d.Activities))
			for j, a := range d.Activities {
				row.Activities[j] = a.Name
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func formatISODate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}
