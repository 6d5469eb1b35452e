package geo

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Bearing returns the initial bearing in degrees [0, 360) when travelling on a
// great circle from (lat1, lon1) to (lat2, lon2). Identical positions yield 0.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * degToRad
	la2 := lat2 * degToRad
	dLon := (lon2 - lon1) * degToRad

	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	return NormalizeBearing(math.Atan2(y, x)*radToDeg, 0)
}

// NormalizeBearing adds offset to bearing and wraps the result into [0, 360).
func NormalizeBearing(bearing, offset float64) float64 {
	r := bearing + offset
	if r >= 0 && r < 360 {
		return r
	}
	r = math.Mod(r, 360)
	if r < 0 {
		r += 360
	}
	// -1e-15 + 360 rounds to 360
	if r >= 360 {
		return 0
	}
	return r
}
