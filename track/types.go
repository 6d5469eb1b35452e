package track

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyTrack is returned when a track has no samples at all.
var ErrEmptyTrack = errors.New("track has no points")

// TrackPoint is one recorded GPS sample.
type TrackPoint struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	Elevation *float64 // meters, nil when the source has none
}

// Samples is the decoded content of one track source before loading.
// Waypoints are standalone samples and are merged like any other point.
type Samples struct {
	Points    []TrackPoint
	Waypoints []TrackPoint
}

// Len returns the total number of samples.
func (s Samples) Len() int { return len(s.Points) + len(s.Waypoints) }

// Fix is an interpolated position for one query time.
type Fix struct {
	Latitude  float64
	Longitude float64
	Elevation *float64
	Bearing   float64
}

// OutOfRangeError reports a query time outside the recorded time span.
type OutOfRangeError struct {
	Query time.Time
	Start time.Time
	End   time.Time
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("time %s not in scope of track (%s to %s)",
		e.Query.Format(time.RFC3339Nano), e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func floatPtr(f float64) *float64 { return &f }
