package track

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

// DecodeGPX parses a GPX document and returns its track segment points and
// waypoints. Points without a timestamp cannot be placed on the timeline and
// are dropped.
func DecodeGPX(data []byte) (Samples, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return Samples{}, fmt.Errorf("parse gpx: %w", err)
	}

	var s Samples
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				if tp, ok := fromGPXPoint(p); ok {
					s.Points = append(s.Points, tp)
				}
			}
		}
	}
	for _, w := range doc.Waypoints {
		if tp, ok := fromGPXPoint(w); ok {
			s.Waypoints = append(s.Waypoints, tp)
		}
	}
	return s, nil
}

func fromGPXPoint(p gpx.GPXPoint) (TrackPoint, bool) {
	if p.Timestamp.IsZero() {
		return TrackPoint{}, false
	}
	tp := TrackPoint{
		Time:      p.Timestamp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
	if p.Elevation.NotNull() {
		tp.Elevation = floatPtr(p.Elevation.Value())
	}
	return tp, true
}
