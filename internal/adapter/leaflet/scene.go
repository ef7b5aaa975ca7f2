// Package leaflet assembles the map scene handed to Leaflet in the browser:
// base tile layers, the earthquake overlay, the depth legend, and controls.
package leaflet

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

const (
	streetTileURL       = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	streetAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	topoTileURL         = "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png"
	topoAttribution     = `Map data: &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, <a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> (<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`
	streetLayerName     = "Street Map"
	topoLayerName       = "Topographic Map"
	overlayName         = "Earthquakes"
	legendTitle         = "Depth (km)"
	legendPosition      = "bottomright"
	legendFloor         = -10.0
	defaultZoom         = 2
	circleFillOpacity   = 0.5
	circleOutlineColor  = "black"
	circleOutlineWeight = 1
	defaultPageTitle    = "Earthquakes, Past Week"
)

// DefaultCenter is the initial map center.
var DefaultCenter = domain.LatLng{Lat: 33.3943, Lng: -104.5230}

// TileLayer is a base map built from a tile URL template.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Circle is one earthquake marker in Leaflet circle options form.
type Circle struct {
	ID          string        `json:"id,omitempty"`
	Lat         float64       `json:"lat"`
	Lng         float64       `json:"lng"`
	Radius      float64       `json:"radius"`
	FillColor   string        `json:"fillColor"`
	FillOpacity float64       `json:"fillOpacity"`
	Color       string        `json:"color"`
	Stroke      bool          `json:"stroke"`
	Weight      int           `json:"weight"`
	Popup       template.HTML `json:"popup"`
}

// Overlay is a toggleable layer of circles.
type Overlay struct {
	Name    string   `json:"name"`
	Circles []Circle `json:"circles"`
}

// LegendEntry pairs a swatch color with its depth range label.
type LegendEntry struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Legend is the depth key control.
type Legend struct {
	Position string        `json:"position"`
	Title    string        `json:"title"`
	Entries  []LegendEntry `json:"entries"`
}

// View is the initial map viewport.
type View struct {
	Center domain.LatLng `json:"center"`
	Zoom   int           `json:"zoom"`
}

// Scene is everything the page needs to draw the map.
type Scene struct {
	Title                 string      `json:"title"`
	BaseLayers            []TileLayer `json:"baseLayers"`
	DefaultBase           string      `json:"defaultBase"`
	Overlay               Overlay     `json:"overlay"`
	View                  View        `json:"view"`
	Legend                Legend      `json:"legend"`
	LayerControlCollapsed bool        `json:"layerControlCollapsed"`
	FetchedAt             time.Time   `json:"fetchedAt"`
}

var popupTmpl = template.Must(template.New("popup").Parse(
	`<h3>{{index . 0}}</h3><hr><p>{{index . 2}}</p><p>{{index . 3}}</p><p>{{index . 4}}</p>`))

// BuildScene lays out the map for a set of markers in input order.
func BuildScene(markers []domain.Marker, fetchedAt time.Time) Scene {
	return Scene{
		Title: defaultPageTitle,
		BaseLayers: []TileLayer{
			{Name: streetLayerName, URL: streetTileURL, Attribution: streetAttribution},
			{Name: topoLayerName, URL: topoTileURL, Attribution: topoAttribution},
		},
		DefaultBase: streetLayerName,
		Overlay: Overlay{
			Name:    overlayName,
			Circles: lo.Map(markers, func(m domain.Marker, _ int) Circle { return circleFor(m) }),
		},
		View:   View{Center: DefaultCenter, Zoom: defaultZoom},
		Legend: buildLegend(domain.DepthBands()),
		// The layer control stays expanded.
		LayerControlCollapsed: false,
		FetchedAt:             fetchedAt,
	}
}

func circleFor(m domain.Marker) Circle {
	return Circle{
		ID:  m.ID,
		Lat: m.Position.Lat,
		Lng: m.Position.Lng,
		// Leaflet rejects negative radii; small negative-magnitude events draw as points.
		Radius:      math.Max(0, m.Radius),
		FillColor:   m.FillColor,
		FillOpacity: circleFillOpacity,
		Color:       circleOutlineColor,
		Stroke:      false,
		Weight:      circleOutlineWeight,
		Popup:       popupHTML(m.Description),
	}
}

func popupHTML(d domain.Description) template.HTML {
	var buf bytes.Buffer
	if err := popupTmpl.Execute(&buf, d.Lines()); err != nil {
		return template.HTML(template.HTMLEscapeString(d.String())) //nolint:gosec // HTMLEscapeString output
	}
	return template.HTML(buf.String()) //nolint:gosec // produced by html/template
}

// buildLegend labels each band "<min>–<next min>", the last one "<min>+".
// The open-ended shallow band is shown from legendFloor.
func buildLegend(bands []domain.DepthBand) Legend {
	entries := make([]LegendEntry, len(bands))
	for i, b := range bands {
		lower := b.Min
		if i == 0 {
			lower = legendFloor
		}
		label := fmt.Sprintf("%g+", lower)
		if i+1 < len(bands) {
			label = fmt.Sprintf("%g–%g", lower, bands[i+1].Min)
		}
		entries[i] = LegendEntry{Color: b.Color, Label: label}
	}
	return Legend{Position: legendPosition, Title: legendTitle, Entries: entries}
}
