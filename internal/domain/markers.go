package domain

import (
	"errors"
	"time"
)

// BuildMarker derives the renderable marker for a single feature.
// It returns a *FeatureError when the magnitude or any coordinate is missing.
func BuildMarker(f RawFeature, loc *time.Location) (Marker, error) {
	if f.Magnitude == nil {
		return Marker{}, &FeatureError{ID: f.ID, Field: "magnitude"}
	}
	depth, ok := f.Depth()
	if !ok {
		return Marker{}, &FeatureError{ID: f.ID, Field: "coordinates"}
	}
	mag := *f.Magnitude

	return Marker{
		ID:          f.ID,
		Position:    LatLng{Lat: f.Coordinates[1], Lng: f.Coordinates[0]},
		Radius:      SizeFor(mag),
		FillColor:   ColorFor(depth),
		Description: Describe(f.Place, f.Time, mag, depth, loc),
	}, nil
}

// BuildMarkers converts features to markers, preserving input order.
// Features that cannot be converted are left out and reported together in the
// returned error; the markers for every other feature are still returned.
func BuildMarkers(features []RawFeature, loc *time.Location) ([]Marker, error) {
	markers := make([]Marker, 0, len(features))
	var errs []error
	for i, f := range features {
		m, err := BuildMarker(f, loc)
		if err != nil {
			var fe *FeatureError
			if errors.As(err, &fe) {
				fe.Index = i
			}
			errs = append(errs, err)
			continue
		}
		markers = append(markers, m)
	}
	return markers, errors.Join(errs...)
}
