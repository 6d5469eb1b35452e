package track

import (
	"sort"
	"time"

	"github.com/Nakaner/mapillary-tools/geo"
)

// Track is a time-ordered, read-only sequence of samples. It is safe for
// concurrent readers.
type Track struct {
	points []TrackPoint
}

// Loader merges decoded sources into a Track.
type Loader struct {
	// Location, when set, is applied to every sample time (typically
	// time.Local). When nil all times are kept in UTC.
	Location *time.Location
}

// Load concatenates the track points and waypoints of every source, converts
// their times to the loader's location and sorts them ascending by time.
// Samples sharing a timestamp keep their relative order.
func (l Loader) Load(sources ...Samples) (*Track, error) {
	n := 0
	for _, s := range sources {
		n += s.Len()
	}
	if n == 0 {
		return nil, ErrEmptyTrack
	}

	points := make([]TrackPoint, 0, n)
	for _, s := range sources {
		points = append(points, s.Points...)
		points = append(points, s.Waypoints...)
	}
	for i := range points {
		if l.Location != nil {
			points[i].Time = points[i].Time.In(l.Location)
		} else {
			points[i].Time = points[i].Time.UTC()
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return &Track{points: points}, nil
}

// New builds a Track from points without converting their times.
func New(points []TrackPoint) (*Track, error) {
	if len(points) == 0 {
		return nil, ErrEmptyTrack
	}
	cp := make([]TrackPoint, len(points))
	copy(cp, points)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Time.Before(cp[j].Time)
	})
	return &Track{points: cp}, nil
}

// Len returns the number of samples.
func (t *Track) Len() int { return len(t.points) }

// Points returns a copy of the samples in time order.
func (t *Track) Points() []TrackPoint {
	cp := make([]TrackPoint, len(t.points))
	copy(cp, t.points)
	return cp
}

// Start returns the time of the first sample.
func (t *Track) Start() time.Time { return t.points[0].Time }

// End returns the time of the last sample.
func (t *Track) End() time.Time { return t.points[len(t.points)-1].Time }

// LengthKM sums haversine distances between consecutive samples.
func (t *Track) LengthKM() float64 {
	km := 0.0
	for i := 1; i < len(t.points); i++ {
		a, b := t.points[i-1], t.points[i]
		km += geo.HaversineKM(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	}
	return km
}
