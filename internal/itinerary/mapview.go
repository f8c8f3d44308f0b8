package itinerary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Zoom levels of the map widget.
const (
	ZoomWorld        = 1
	ZoomCity         = 11
	ZoomDefault      = ZoomCity
	ZoomPlanner      = 5
	ZoomPlannerEmpty = 3
)

// worldCenter is shown when there is nothing to center on.
var worldCenter = LatLng{Lat: 20, Lng: 0}

// LatLng is a map position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapView is what a map widget needs to draw an itinerary.
type MapView struct {
	Center  LatLng                     `json:"center"`
	Zoom    int                        `json:"zoom"`
	Markers *geojson.FeatureCollection `json:"markers"`
	// Bounds is [west, south, east, north]; nil when there are no markers.
	Bounds []float64 `json:"bounds"`
}

// NewMapView centers on the first location and picks a zoom from the number
// of locations: the world view when empty, a city view for a single
// location, otherwise zoomHint. A zoomHint <= 0 means ZoomDefault.
func NewMapView(locations []domain.Destination, zoomHint int) MapView {
	if zoomHint <= 0 {
		zoomHint = ZoomDefault
	}
	v := MapView{
		Center:  worldCenter,
		Zoom:    zoomHint,
		Markers: geojson.NewFeatureCollection(),
	}
	switch len(locations) {
	case 0:
		v.Zoom = ZoomWorld
		return v
	case 1:
		v.Zoom = ZoomCity
	}
	v.Center = LatLng{Lat: locations[0].Lat, Lng: locations[0].Lng}

	points := make(orb.MultiPoint, 0, len(locations))
	for i, d := range locations {
		p := point(d)
		points = append(points, p)

		f := geojson.NewFeature(p)
		f.ID = d.ID
		f.Properties["name"] = d.Name
		f.Properties["position"] = i + 1
		v.Markers.Append(f)
	}
	b := points.Bound()
	v.Bounds = []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	return v
}

// RouteDistance returns the great-circle length in kilometres of the legs
// between consecutive destinations, following itinerary order.
func RouteDistance(dests []domain.Destination) float64 {
	meters := 0.0
	for i := 1; i < len(dests); i++ {
		meters += geo.Distance(point(dests[i-1]), point(dests[i]))
	}
	return meters / 1000
}

func point(d domain.Destination) orb.Point {
	return orb.Point{d.Lng, d.Lat}
}
