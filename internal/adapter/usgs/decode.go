package usgs

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// USGS GeoJSON summary types. Only the fields the map consumes are decoded.

type featureCollection struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	Features []feature `json:"features"`
}

type metadata struct {
	Generated int64  `json:"generated"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   *geometry  `json:"geometry"`
}

type properties struct {
	Place string   `json:"place"`
	Time  int64    `json:"time"`
	Mag   *float64 `json:"mag"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// Decode reads a USGS GeoJSON FeatureCollection and returns its features in
// document order.
func Decode(r io.Reader) ([]domain.RawFeature, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode feed: unexpected document type %q", fc.Type)
	}

	out := make([]domain.RawFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		raw := domain.RawFeature{
			ID:        f.ID,
			Place:     f.Properties.Place,
			Time:      f.Properties.Time,
			Magnitude: f.Properties.Mag,
		}
		if f.Geometry != nil {
			raw.Coordinates = f.Geometry.Coordinates
		}
		out = append(out, raw)
	}
	return out, nil
}
