package geo

import "math"

// DMS is an unsigned angle split into whole degrees, whole minutes and
// fractional seconds, plus the hemisphere reference letter.
type DMS struct {
	Degrees int
	Minutes int
	Seconds float64
	Ref     string
}

// ToDMS converts a signed decimal degree value. negRef is used for values
// below zero (S or W), posRef otherwise (N or E).
func ToDMS(value float64, negRef, posRef string) DMS {
	ref := posRef
	if value < 0 {
		ref = negRef
	}
	abs := math.Abs(value)
	deg := math.Floor(abs)
	min := math.Floor((abs - deg) * 60)
	sec := (abs - deg - min/60) * 3600
	if sec < 0 {
		sec = 0
	}
	return DMS{
		Degrees: int(deg),
		Minutes: int(min),
		Seconds: sec,
		Ref:     ref,
	}
}

// Latitude converts a signed latitude into DMS with an N/S reference.
func Latitude(lat float64) DMS { return ToDMS(lat, "S", "N") }

// Longitude converts a signed longitude into DMS with an E/W reference.
func Longitude(lon float64) DMS { return ToDMS(lon, "W", "E") }
