package location

import "math"

const earthRadiusMiles = 3959

// Coordinate is a (lat, lng) pair in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Haversine returns the great-circle distance between two coordinates in
// miles.
func Haversine(a, b Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	deltaLat := radians(b.Lat - a.Lat)
	deltaLng := radians(b.Lng - a.Lng)

	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
