package geo

import "math"

// EarthRadiusKM is the mean earth radius used by HaversineKM.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two positions.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	la1 := lat1 * degToRad
	la2 := lat2 * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}
