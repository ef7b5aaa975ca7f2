package geojson

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		FetchedAt: time.Date(2023, time.November, 15, 1, 2, 3, 0, time.UTC),
		Skipped:   1,
		Markers: []domain.Marker{
			{
				ID:          "us7000test",
				Position:    domain.LatLng{Lat: 35, Lng: -100},
				Radius:      420000,
				FillColor:   domain.ColorModerate,
				Description: domain.Describe("10km NE of Testville", 1700000000000, 4.2, 45, time.UTC),
			},
			{
				Position:    domain.LatLng{Lat: -17.9, Lng: -178.1},
				Radius:      590000,
				FillColor:   domain.ColorExtreme,
				Description: domain.Describe("Fiji region", 1699997000000, 5.9, 560.2, time.UTC),
			},
		},
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := FeatureCollection(testSnapshot())

	require.Len(t, fc.Features, 2)
	first := fc.Features[0]
	assert.Equal(t, "us7000test", first.ID)
	assert.Equal(t, orb.Point{-100, 35}, first.Geometry)
	assert.InDelta(t, 420000.0, first.Properties.MustFloat64("radius"), 1e-9)
	assert.Equal(t, domain.ColorModerate, first.Properties.MustString("fill_color"))
	assert.Contains(t, first.Properties.MustString("description"), "Testville")

	assert.Nil(t, fc.Features[1].ID, "empty ids are omitted")
	assert.Equal(t, "2023-11-15T01:02:03Z", fc.ExtraMembers["fetched_at"])
}

func TestMarshal_RoundTripsThroughOrb(t *testing.T) {
	data, err := Marshal(testSnapshot())
	require.NoError(t, err)

	fc, err := orbjson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	p, ok := fc.Features[1].Geometry.(orb.Point)
	require.True(t, ok)
	assert.InDelta(t, -178.1, p.Lon(), 1e-9)
	assert.InDelta(t, -17.9, p.Lat(), 1e-9)
	assert.InDelta(t, 5.9, fc.Features[1].Properties.MustFloat64("magnitude"), 1e-9)
	assert.InDelta(t, 1.0, fc.ExtraMembers.MustFloat64("skipped"), 1e-9)
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(domain.Snapshot{Markers: []domain.Marker{}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"features":[]`)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
}
