// Package render builds the interactive Leaflet map document.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/airwatch-tw/aqimon/internal/aqi"
	"github.com/airwatch-tw/aqimon/internal/station"
)

//go:embed map.tmpl.html
var mapTemplate string

var tmpl = template.Must(template.New("map").Parse(mapTemplate))

// Marker radius is a fixed base plus a linear function of the AQI value.
const (
	defaultZoom  = 8
	baseRadius   = 8.0
	radiusPerAQI = 1.0 / 50.0
)

// Marker is one station circle on the map.
type Marker struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Radius  float64 `json:"radius"`
	Color   string  `json:"color"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
}

// Map is the in-memory map document, ready for serialization.
type Map struct {
	CenterLat float64
	CenterLng float64
	Zoom      int
	Markers   []Marker
	RefLat    float64
	RefLng    float64
	RefLabel  string
}

// legendEntry is one row of the static band legend overlay.
type legendEntry struct {
	Color string
	Text  string
}

var legend = []legendEntry{
	{Color: "#00E400", Text: "0-50 Good"},
	{Color: "#FFFF00", Text: "51-100 Moderate"},
	{Color: "#FF0000", Text: "101+ Unhealthy"},
}

// Build assembles the map from enriched readings. The center is the mean
// station position. An empty input produces no map.
func Build(readings []aqi.Reading) (*Map, error) {
	if len(readings) == 0 {
		return nil, eris.New("render: no readings to map")
	}

	var sumLat, sumLng float64
	markers := make([]Marker, 0, len(readings))
	for i := range readings {
		r := &readings[i]
		sumLat += r.Latitude
		sumLng += r.Longitude

		value := r.DisplayAQI()
		band := aqi.Classify(value)
		markers = append(markers, Marker{
			Lat:     r.Latitude,
			Lng:     r.Longitude,
			Radius:  baseRadius + value*radiusPerAQI,
			Color:   band.Color(),
			Popup:   popupHTML(r, value, band),
			Tooltip: fmt.Sprintf("%s - AQI: %s", r.SiteName, formatValue(value)),
		})
	}

	return &Map{
		CenterLat: sumLat / float64(len(readings)),
		CenterLng: sumLng / float64(len(readings)),
		Zoom:      defaultZoom,
		Markers:   markers,
		RefLat:    station.Reference.Latitude,
		RefLng:    station.Reference.Longitude,
		RefLabel:  station.ReferenceName,
	}, nil
}

// templateData is what the embedded Leaflet template consumes.
type templateData struct {
	CenterLat   float64
	CenterLng   float64
	Zoom        int
	MarkersJSON template.JS
	RefLat      float64
	RefLng      float64
	RefLabel    string
	Legend      []legendEntry
}

// WriteHTML serializes the map document to w.
func (m *Map) WriteHTML(w io.Writer) error {
	payload, err := json.Marshal(m.Markers)
	if err != nil {
		return eris.Wrap(err, "render: marshal markers")
	}

	data := templateData{
		CenterLat:   m.CenterLat,
		CenterLng:   m.CenterLng,
		Zoom:        m.Zoom,
		MarkersJSON: template.JS(payload), //nolint:gosec // station fields are HTML-escaped in popupHTML
		RefLat:      m.RefLat,
		RefLng:      m.RefLng,
		RefLabel:    m.RefLabel,
		Legend:      legend,
	}
	if err := tmpl.Execute(w, data); err != nil {
		return eris.Wrap(err, "render: execute template")
	}
	return nil
}

// SaveHTML writes the map document to path, creating parent directories.
func SaveHTML(m *Map, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "render: create output dir %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	return m.WriteHTML(f)
}

// popupHTML renders the popup body for one station.
func popupHTML(r *aqi.Reading, value float64, band aqi.Band) string {
	distance := "n/a"
	if r.DistanceKM != nil {
		distance = fmt.Sprintf("%.2f km", *r.DistanceKM)
	}
	return fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; font-size: 14px;">`+
			`<h4 style="margin: 5px 0; color: #333;">%s</h4>`+
			`<p style="margin: 3px 0;"><strong>County:</strong> %s</p>`+
			`<p style="margin: 3px 0;"><strong>AQI:</strong> <span style="color: %s; font-weight: bold;">%s</span></p>`+
			`<p style="margin: 3px 0;"><strong>Distance to %s:</strong> %s</p>`+
			`<p style="margin: 3px 0; font-size: 12px; color: #666;">Band: %s</p>`+
			`</div>`,
		html.EscapeString(r.SiteName),
		html.EscapeString(r.County),
		band.Color(),
		formatValue(value),
		station.ReferenceName,
		distance,
		band.Label(),
	)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
