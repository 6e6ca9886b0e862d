package utils

import "math"

// earthRadiusKm is the fixed Earth radius used throughout matching.
const earthRadiusKm = 6371.0

// CalculateDistance returns the haversine distance in kilometers between two
// coordinates given in degrees.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RoundKm rounds a distance to two decimal places, the precision shown to
// users and quoted in notifications.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
