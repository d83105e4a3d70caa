package aqi

// Band is one of the three AQI severity tiers.
type Band int

// Severity bands, ordered by increasing severity.
const (
	Good Band = iota
	Moderate
	Unhealthy
)

// Band thresholds (upper bounds, inclusive).
const (
	goodMax     = 50
	moderateMax = 100
)

// Classify maps an AQI value to its severity band.
// The domain partitions exactly at 50 and 100.
func Classify(v float64) Band {
	if v <= goodMax {
		return Good
	}
	if v <= moderateMax {
		return Moderate
	}
	return Unhealthy
}

// Label returns the display label for the band.
func (b Band) Label() string {
	switch b {
	case Good:
		return "Good"
	case Moderate:
		return "Moderate"
	default:
		return "Unhealthy"
	}
}

// Color returns the display hex color for the band.
func (b Band) Color() string {
	switch b {
	case Good:
		return "#00E400"
	case Moderate:
		return "#FFFF00"
	default:
		return "#FF0000"
	}
}
