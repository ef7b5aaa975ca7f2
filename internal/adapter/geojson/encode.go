// Package geojson encodes rendered markers as a GeoJSON FeatureCollection
// for API clients.
package geojson

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// FeatureCollection converts markers to point features in input order.
// Positions are written in GeoJSON [lng, lat] order.
func FeatureCollection(snap domain.Snapshot) *orbjson.FeatureCollection {
	fc := orbjson.NewFeatureCollection()
	fc.ExtraMembers = orbjson.Properties{
		"fetched_at": snap.FetchedAt.UTC().Format(time.RFC3339),
		"skipped":    snap.Skipped,
	}
	for _, m := range snap.Markers {
		fc.Append(feature(m))
	}
	return fc
}

func feature(m domain.Marker) *orbjson.Feature {
	f := orbjson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
	if m.ID != "" {
		f.ID = m.ID
	}
	f.Properties["radius"] = m.Radius
	f.Properties["fill_color"] = m.FillColor
	f.Properties["place"] = m.Description.Place
	f.Properties["time"] = m.Description.Time.UnixMilli()
	f.Properties["magnitude"] = m.Description.Magnitude
	f.Properties["depth"] = m.Description.Depth
	f.Properties["description"] = m.Description.String()
	return f
}

// Marshal encodes the snapshot as GeoJSON bytes.
func Marshal(snap domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(FeatureCollection(snap))
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return data, nil
}
