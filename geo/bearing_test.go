package geo

import (
	"math"
	"testing"
)

func TestBearingCardinalDirections(t *testing.T) {
	tests := []struct {
		name       string
		lat2, lon2 float64
		expected   float64
	}{
		{name: "north", lat2: 1, lon2: 0, expected: 0},
		{name: "east", lat2: 0, lon2: 1, expected: 90},
		{name: "south", lat2: -1, lon2: 0, expected: 180},
		{name: "west", lat2: 0, lon2: -1, expected: 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(0, 0, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBearingSamePosition(t *testing.T) {
	if got := Bearing(47.1, 8.5, 47.1, 8.5); got != 0 {
		t.Errorf("expected 0 for identical positions, got %v", got)
	}
}

func TestBearingNortheast(t *testing.T) {
	got := Bearing(10.0, 20.0, 10.001, 20.002)
	// dLon*cos(lat) ~ 1.97e-3 vs dLat 1e-3, roughly 63 degrees
	if got < 60 || got > 66 {
		t.Errorf("unexpected bearing %v", got)
	}
}

func TestNormalizeBearing(t *testing.T) {
	tests := []struct {
		name            string
		bearing, offset float64
		expected        float64
	}{
		{name: "in range", bearing: 45, offset: 0, expected: 45},
		{name: "offset stays in range", bearing: 45, offset: 100, expected: 145},
		{name: "wraps past 360", bearing: 350, offset: 20, expected: 10},
		{name: "exactly 360", bearing: 180, offset: 180, expected: 0},
		{name: "negative", bearing: 10, offset: -40, expected: 330},
		{name: "large negative", bearing: 0, offset: -725, expected: 355},
		{name: "large positive", bearing: 0, offset: 1085, expected: 5},
		{name: "tiny negative rounds to zero", bearing: 0, offset: -1e-15, expected: 0},
		{name: "backwards photos", bearing: 270, offset: 180, expected: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBearing(tt.bearing, tt.offset)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNormalizeBearingAlwaysInRange(t *testing.T) {
	for b := -1000.0; b <= 1000.0; b += 7.3 {
		for _, off := range []float64{-720, -360, -0.5, 0, 0.5, 360, 1080} {
			got := NormalizeBearing(b, off)
			if got < 0 || got >= 360 {
				t.Fatalf("NormalizeBearing(%v, %v) = %v, out of [0,360)", b, off, got)
			}
		}
	}
}

func TestNormalizeBearingFullTurnIsIdentity(t *testing.T) {
	for b := -500.0; b <= 500.0; b += 12.5 {
		a := NormalizeBearing(b, 0)
		c := NormalizeBearing(b, 360)
		if math.Abs(a-c) > 1e-9 {
			t.Errorf("bearing %v: offset 360 gave %v, offset 0 gave %v", b, c, a)
		}
		want := math.Mod(b, 360)
		if want < 0 {
			want += 360
		}
		if math.Abs(a-want) > 1e-9 {
			t.Errorf("bearing %v: expected %v, got %v", b, want, a)
		}
	}
}
