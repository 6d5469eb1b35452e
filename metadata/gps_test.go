package metadata

import (
	"math"
	"testing"

	"github.com/Nakaner/mapillary-tools/track"
)

func elev(f float64) *float64 { return &f }

func TestEncodeFix(t *testing.T) {
	rec := EncodeFix(track.Fix{
		Latitude:  10.0005,
		Longitude: 20.001,
		Elevation: elev(105.37),
		Bearing:   123.456,
	})

	if rec.LatitudeRef != "N" || rec.LongitudeRef != "E" {
		t.Errorf("unexpected refs %s %s", rec.LatitudeRef, rec.LongitudeRef)
	}
	if rec.Latitude[0] != (Rational{10, 1}) || rec.Latitude[1] != (Rational{0, 1}) {
		t.Errorf("unexpected latitude degrees/minutes %v", rec.Latitude)
	}
	if rec.Latitude[2].Den != 1000000 || math.Abs(rec.Latitude[2].Float64()-1.8) > 1e-5 {
		t.Errorf("unexpected latitude seconds %v", rec.Latitude[2])
	}
	if math.Abs(rec.Longitude[2].Float64()-3.6) > 1e-5 {
		t.Errorf("unexpected longitude seconds %v", rec.Longitude[2])
	}
	if rec.ImgDirection != (Rational{12345, 100}) {
		t.Errorf("expected truncated bearing 12345/100, got %v", rec.ImgDirection)
	}
	if rec.Altitude == nil || *rec.Altitude != (Rational{1053, 10}) || rec.AltitudeRef != AboveSeaLevel {
		t.Errorf("unexpected altitude %v ref %d", rec.Altitude, rec.AltitudeRef)
	}
	if rec.MapDatum != "WGS-84" || rec.ImgDirectionRef != "T" || rec.VersionID != "2 0 0 0" {
		t.Errorf("unexpected constants %+v", rec)
	}
}

func TestEncodeFixSouthWestBelowSeaLevel(t *testing.T) {
	rec := EncodeFix(track.Fix{
		Latitude:  -31.5,
		Longitude: -71.25,
		Elevation: elev(-12.34),
	})
	if rec.LatitudeRef != "S" || rec.LongitudeRef != "W" {
		t.Errorf("unexpected refs %s %s", rec.LatitudeRef, rec.LongitudeRef)
	}
	if rec.Latitude[0].Num != 31 || rec.Latitude[1].Num != 30 {
		t.Errorf("unexpected latitude %v", rec.Latitude)
	}
	if rec.Longitude[0].Num != 71 || rec.Longitude[1].Num != 15 {
		t.Errorf("unexpected longitude %v", rec.Longitude)
	}
	if rec.Altitude == nil || *rec.Altitude != (Rational{123, 10}) {
		t.Errorf("expected absolute altitude 123/10, got %v", rec.Altitude)
	}
	if rec.AltitudeRef != BelowSeaLevel {
		t.Errorf("expected below sea level")
	}
}

func TestEncodeFixWithoutElevation(t *testing.T) {
	rec := EncodeFix(track.Fix{Latitude: 1, Longitude: 1})
	if rec.Altitude != nil {
		t.Errorf("expected no altitude, got %v", rec.Altitude)
	}
	if _, ok := rec.Fields()["GPSAltitude"]; ok {
		t.Errorf("altitude must not be written without elevation")
	}
}

func TestFields(t *testing.T) {
	rec := EncodeFix(track.Fix{
		Latitude:  -33.5,
		Longitude: 151.25,
		Elevation: elev(-2),
		Bearing:   90.5,
	})
	f := rec.Fields()

	expected := map[string]string{
		"GPSLatitude":        "33 30 0",
		"GPSLatitudeRef":     "South",
		"GPSLongitude":       "151 15 0",
		"GPSLongitudeRef":    "East",
		"GPSImgDirection":    "90.5",
		"GPSImgDirectionRef": "True North",
		"GPSMapDatum":        "WGS-84",
		"GPSVersionID":       "2 0 0 0",
		"GPSAltitude":        "2",
		"GPSAltitudeRef":     "Below Sea Level",
	}
	for k, want := range expected {
		if got := f[k]; got != want {
			t.Errorf("%s: expected %q, got %q", k, want, got)
		}
	}
	if len(f) != len(expected) {
		t.Errorf("expected %d fields, got %d", len(expected), len(f))
	}
}

func TestRational(t *testing.T) {
	if got := (Rational{1, 0}).Float64(); got != 0 {
		t.Errorf("zero denominator should yield 0, got %v", got)
	}
	if got := (Rational{1053, 10}).String(); got != "1053/10" {
		t.Errorf("unexpected string %q", got)
	}
}
