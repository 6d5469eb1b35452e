package geo

import "testing"

func TestHaversineKM(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKM(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKMZero(t *testing.T) {
	if d := HaversineKM(10, 20, 10, 20); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}
