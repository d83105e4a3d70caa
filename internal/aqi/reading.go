// Package aqi holds the station reading model and the severity band classifier.
package aqi

// Reading is one normalized, enriched station observation. Pollutant values
// are pointers: nil means the upstream record carried no parseable number.
type Reading struct {
	SiteName         string
	County           string
	AQI              *float64
	PM25             *float64
	PM10             *float64
	O3               *float64
	NO2              *float64
	SO2              *float64
	CO               *float64
	DataCreationDate string
	Latitude         float64
	Longitude        float64
	DistanceKM       *float64
}

// DisplayAQI returns the value used for marker sizing and coloring. A missing
// AQI displays as 0; the nil itself is preserved for export.
func (r *Reading) DisplayAQI() float64 {
	if r.AQI == nil {
		return 0
	}
	return *r.AQI
}
