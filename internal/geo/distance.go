package geo

import "math"

// EarthRadiusKm is Earth's radius in kilometers for Haversine calculation.
const EarthRadiusKm = 6371.0088

// HaversineKm calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// IsWithinRadiusKm checks if two coordinates are within the specified radius in kilometers.
func IsWithinRadiusKm(lat1, lon1, lat2, lon2, radiusKm float64) bool {
	return HaversineKm(lat1, lon1, lat2, lon2) <= radiusKm
}
