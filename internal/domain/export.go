package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per destination, with trip fields
// repeated for every destination on that trip. Trips with no destinations
// yield one row with zero values for all destination fields.
//
// Activities holds the activity names in itinerary order.
// Callers that need a joined string (e.g. CSV) should join them.
type ExportRow struct {
	// Trip fields, repeated for every destination on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02"
	TripEndDate   string // "2006-01-02"

	// Destination fields, zero values when the trip has no destinations.
	Position            int // 1-based itinerary position; 0 when absent
	DestinationID       string
	DestinationName     string
	DestinationVicinity string
	Lat                 float64
	Lng                 float64
	Duration            int

	Activities []string
}
