package domain

import "time"

// RawFeature is one earthquake record as received from the feed.
type RawFeature struct {
	ID    string
	Place string
	Time  int64 // epoch milliseconds

	// Magnitude is nil when the feed reports "mag": null.
	Magnitude *float64

	// Coordinates holds longitude, latitude and depth in km, in feed order.
	// Negative depth means the event was above sea level.
	Coordinates []float64
}

// Depth returns the third coordinate and whether it was present.
func (f RawFeature) Depth() (float64, bool) {
	if len(f.Coordinates) < 3 {
		return 0, false
	}
	return f.Coordinates[2], true
}

// LatLng is a WGS-84 position in Leaflet order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is the renderable form of a single RawFeature.
type Marker struct {
	ID          string      `json:"id,omitempty"`
	Position    LatLng      `json:"position"`
	Radius      float64     `json:"radius"`
	FillColor   string      `json:"fill_color"`
	Description Description `json:"description"`
}

// Snapshot is the result of one fetch of the feed.
type Snapshot struct {
	Markers   []Marker  `json:"markers"`
	Skipped   int       `json:"skipped"`
	FetchedAt time.Time `json:"fetched_at"`
}
