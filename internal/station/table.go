// Package station holds the static monitoring-site coordinate table and the
// fixed reference point used as the distance anchor.
package station

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed stations.yaml
var stationsYAML []byte

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Reference is the fixed distance anchor: Taipei Main Station.
var Reference = Coordinate{Latitude: 25.0478, Longitude: 121.5170}

// ReferenceName is the display name of the reference point.
const ReferenceName = "Taipei Main Station"

// Table maps site names to coordinates. Immutable after Load.
type Table struct {
	coords map[string]Coordinate
}

// Load parses the embedded coordinate table. Called once at startup.
func Load() (*Table, error) {
	var raw map[string][]float64
	if err := yaml.Unmarshal(stationsYAML, &raw); err != nil {
		return nil, eris.Wrap(err, "station: parse coordinate table")
	}

	coords := make(map[string]Coordinate, len(raw))
	for name, pair := range raw {
		if len(pair) != 2 {
			return nil, eris.Errorf("station: site %q has %d coordinate values, want 2", name, len(pair))
		}
		coords[normalizeName(name)] = Coordinate{Latitude: pair[0], Longitude: pair[1]}
	}

	return &Table{coords: coords}, nil
}

// Lookup returns the coordinates for a site name. Names are trimmed and
// NFC-normalized before comparison so upstream encoding variants still match.
func (t *Table) Lookup(name string) (Coordinate, bool) {
	c, ok := t.coords[normalizeName(name)]
	return c, ok
}

// Len returns the number of known sites.
func (t *Table) Len() int {
	return len(t.coords)
}

// Names returns all site names in lexicographic order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.coords))
	for name := range t.coords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
