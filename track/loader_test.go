package track

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2014, 11, 27, 13, 1, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func TestLoaderMergesAndSorts(t *testing.T) {
	src := Samples{
		Points: []TrackPoint{
			{Time: at(20), Latitude: 3},
			{Time: at(0), Latitude: 1},
		},
		Waypoints: []TrackPoint{
			{Time: at(10), Latitude: 2},
		},
	}
	other := Samples{Points: []TrackPoint{{Time: at(30), Latitude: 4}}}

	trk, err := Loader{}.Load(src, other)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if trk.Len() != 4 {
		t.Fatalf("expected 4 points, got %d", trk.Len())
	}
	for i, p := range trk.Points() {
		if p.Latitude != float64(i+1) {
			t.Errorf("point %d: expected latitude %d, got %v", i, i+1, p.Latitude)
		}
	}
	if !trk.Start().Equal(at(0)) || !trk.End().Equal(at(30)) {
		t.Errorf("unexpected span %v - %v", trk.Start(), trk.End())
	}
}

func TestLoaderKeepsDuplicateTimesInOrder(t *testing.T) {
	src := Samples{Points: []TrackPoint{
		{Time: at(5), Latitude: 1},
		{Time: at(5), Latitude: 2},
		{Time: at(0), Latitude: 0},
		{Time: at(5), Latitude: 3},
	}}
	trk, err := Loader{}.Load(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pts := trk.Points()
	if len(pts) != 4 {
		t.Fatalf("duplicates must not be removed, got %d points", len(pts))
	}
	for i, want := range []float64{0, 1, 2, 3} {
		if pts[i].Latitude != want {
			t.Errorf("point %d: expected %v, got %v", i, want, pts[i].Latitude)
		}
	}
}

func TestLoaderLocation(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	src := Samples{
		Points:    []TrackPoint{{Time: at(0)}},
		Waypoints: []TrackPoint{{Time: at(1).In(time.FixedZone("X", -7200))}},
	}

	t.Run("local", func(t *testing.T) {
		trk, err := Loader{Location: zone}.Load(src)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		for _, p := range trk.Points() {
			if p.Time.Location() != zone {
				t.Errorf("expected %v, got %v", zone, p.Time.Location())
			}
		}
		if trk.Start().Hour() != 14 {
			t.Errorf("expected 14h local, got %d", trk.Start().Hour())
		}
		if !trk.Start().Equal(at(0)) {
			t.Errorf("conversion must not move the instant")
		}
	})

	t.Run("utc", func(t *testing.T) {
		trk, err := Loader{}.Load(src)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		for _, p := range trk.Points() {
			if p.Time.Location() != time.UTC {
				t.Errorf("expected UTC, got %v", p.Time.Location())
			}
		}
	})
}

func TestLoaderEmpty(t *testing.T) {
	_, err := Loader{}.Load(Samples{}, Samples{})
	if !errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack, got %v", err)
	}
	_, err = Loader{}.Load()
	if !errors.Is(err, ErrEmptyTrack) {
		t.Fatalf("expected ErrEmptyTrack with no sources, got %v", err)
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	in := []TrackPoint{{Time: at(1), Latitude: 1}, {Time: at(0), Latitude: 0}}
	trk, err := New(in)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	in[0].Latitude = 99
	if trk.Points()[1].Latitude != 1 {
		t.Errorf("track must own its points")
	}
	if _, err := New(nil); !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("expected ErrEmptyTrack, got %v", err)
	}
}

func TestLengthKM(t *testing.T) {
	trk, _ := New([]TrackPoint{
		{Time: at(0), Latitude: 0, Longitude: 0},
		{Time: at(1), Latitude: 0, Longitude: 1},
		{Time: at(2), Latitude: 0, Longitude: 2},
	})
	// one degree of longitude at the equator is ~111.2 km
	if km := trk.LengthKM(); km < 222 || km > 223 {
		t.Errorf("unexpected length %v", km)
	}
}
