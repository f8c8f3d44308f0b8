package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"position", "destination_id", "destination_name", "destination_vicinity",
	"lat", "lng", "duration_days", "activities",
}

// ExportRowJSON is one row of the JSON export. Destination fields are
// omitted for trips without destinations.
type ExportRowJSON struct {
	TripID              string   `json:"trip_id"`
	TripName            string   `json:"trip_name"`
	TripStartDate       string   `json:"trip_start_date,omitempty"`
	TripEndDate         string   `json:"trip_end_date,omitempty"`
	Position            int      `json:"position,omitempty"`
	DestinationID       string   `json:"destination_id,omitempty"`
	DestinationName     string   `json:"destination_name,omitempty"`
	DestinationVicinity string   `json:"destination_vicinity,omitempty"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lng                 *float64 `json:"lng,omitempty"`
	Duration            int      `json:"duration_days,omitempty"`
	Activities          []string `json:"activities"`
}

// GetExport handles GET /export.
// It returns a flat table of every trip and destination combination.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err, "export")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "csv":
		writeCSV(w, rows)
	case "", "json":
		writeJSON(w, http.StatusOK, buildJSONResponse(rows))
	default:
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "format must be csv or json")
	}
}

// buildJSONResponse converts domain rows to the JSON response.
func buildJSONResponse(rows []domain.ExportRow) []ExportRowJSON {
	out := make([]ExportRowJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSON(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV.
// Activities within a row are pipe-separated ("|") to keep each destination
// on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // the client has gone if this fails.
	buf.WriteTo(w)
}

// domainRowToJSON maps a domain.ExportRow to its JSON form.
// A row without a destination carries no coordinates.
func domainRowToJSON(r domain.ExportRow) ExportRowJSON {
	row := ExportRowJSON{
		TripID:              r.TripID,
		TripName:            r.TripName,
		TripStartDate:       r.TripStartDate,
		TripEndDate:         r.TripEndDate,
		Position:            r.Position,
		DestinationID:       r.DestinationID,
		DestinationName:     r.DestinationName,
		DestinationVicinity: r.DestinationVicinity,
		Duration:            r.Duration,
		Activities:          r.Activities,
	}
	if row.Activities == nil {
		row.Activities = []string{}
	}
	if r.Position > 0 {
		lat, lng := r.Lat, r.Lng
		row.Lat = &lat
		row.Lng = &lng
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Numeric destination fields are empty for trips without destinations.
// Activities are joined with "|".
func domainRowToCSVRecord(r domain.ExportRow) []string {
	var position, lat, lng, duration string
	if r.Position > 0 {
		position = strconv.Itoa(r.Position)
		lat = strconv.FormatFloat(r.Lat, 'f', -1, 64)
		lng = strconv.FormatFloat(r.Lng, 'f', -1, 64)
		duration = strconv.Itoa(r.Duration)
	}
	return []string{
		r.TripID,
		r.TripName,
		r.TripStartDate,
		r.TripEndDate,
		position,
		r.DestinationID,
		r.DestinationName,
		r.DestinationVicinity,
		lat,
		lng,
		duration,
		strings.Join(r.Activities, "|"),
	}
}
