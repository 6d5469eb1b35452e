package track

import (
	"sort"
	"time"

	"github.com/Nakaner/mapillary-tools/geo"
)

// Interpolate returns the position, elevation and direction of travel at q.
//
// Queries before the first or after the last sample fail with
// *OutOfRangeError. A query that hits a sample exactly returns that sample's
// position, with the bearing taken from the nearest earlier sample at a
// different position (0 when there is none).
func (t *Track) Interpolate(q time.Time) (Fix, error) {
	lo, hi, err := t.Bracket(q)
	if err != nil {
		return Fix{}, err
	}
	if lo >= hi {
		// lo is the last sample at exactly q
		return exactFix(t.points, lo), nil
	}
	return segmentFix(t.points[lo], t.points[hi], q), nil
}

// Bracket returns the indices of the samples surrounding q: lo is the last
// sample with Time <= q and hi the first with Time >= q.
func (t *Track) Bracket(q time.Time) (lo, hi int, err error) {
	if t == nil || len(t.points) == 0 {
		return 0, 0, ErrEmptyTrack
	}
	pts := t.points
	if q.Before(pts[0].Time) || q.After(pts[len(pts)-1].Time) {
		return 0, 0, &OutOfRangeError{Query: q, Start: pts[0].Time, End: pts[len(pts)-1].Time}
	}
	hi = sort.Search(len(pts), func(i int) bool {
		return !pts[i].Time.Before(q)
	})
	lo = sort.Search(len(pts), func(i int) bool {
		return pts[i].Time.After(q)
	}) - 1
	return lo, hi, nil
}

func exactFix(pts []TrackPoint, i int) Fix {
	p := pts[i]
	fix := Fix{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Elevation: p.Elevation,
	}
	for j := i - 1; j >= 0; j-- {
		prev := pts[j]
		if prev.Latitude != p.Latitude || prev.Longitude != p.Longitude {
			fix.Bearing = geo.Bearing(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
			break
		}
	}
	return fix
}

func segmentFix(a, b TrackPoint, q time.Time) Fix {
	f := 0.0
	if span := b.Time.Sub(a.Time); span > 0 {
		f = float64(q.Sub(a.Time)) / float64(span)
	}

	fix := Fix{
		Latitude:  a.Latitude + f*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + f*(b.Longitude-a.Longitude),
		Bearing:   geo.Bearing(a.Latitude, a.Longitude, b.Latitude, b.Longitude),
	}
	if a.Elevation != nil && b.Elevation != nil {
		fix.Elevation = floatPtr(*a.Elevation + f*(*b.Elevation-*a.Elevation))
	}
	return fix
}
