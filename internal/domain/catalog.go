package domain

// CatalogEntry is read-only reference data for a searchable place.
type CatalogEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Vicinity string  `json:"vicinity"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}
