package leaflet

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

const leafletVersion = "1.9.4"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer writes a Scene as a standalone HTML page that draws the map
// with Leaflet.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("map.html.tmpl").
		Funcs(template.FuncMap{"leafletVersion": func() string { return leafletVersion }}).
		ParseFS(templateFS, "templates/map.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse map template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for s to w.
func (r *Renderer) Render(w io.Writer, s Scene) error {
	if err := r.tmpl.Execute(w, s); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}
