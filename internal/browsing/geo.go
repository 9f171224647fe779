package browsing

import (
	"math"

	types "mazdady-market/internal/types/market"
)

// earthRadiusKm is the fixed spherical Earth radius used for ranking.
const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two points in
// kilometers. Symmetric, and zero for identical coordinates.
func Haversine(a, b types.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
