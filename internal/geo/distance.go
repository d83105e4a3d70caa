// Package geo provides great-circle distance helpers.
package geo

import "math"

const earthRadiusKM = 6371.0

// DistanceKM returns the great-circle (haversine) distance in kilometers
// between two points, rounded to 2 decimal places. The boolean is false when
// either pair is not a valid WGS84 coordinate.
func DistanceKM(lat1, lng1, lat2, lng2 float64) (float64, bool) {
	if !validCoord(lat1, lng1) || !validCoord(lat2, lng2) {
		return 0, false
	}

	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Round2(earthRadiusKM * c), true
}

// Round2 rounds a value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func validCoord(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
