package mapillarytools

import (
	"fmt"
	"time"

	"github.com/Nakaner/mapillary-tools/track"
)

// Image is one photo of a batch.
type Image struct {
	Path        string
	Index       int       // position in the shot sequence
	CaptureTime time.Time // as read from metadata
	RefinedTime time.Time // sub-second estimate, derived from CaptureTime
}

// Tagged describes an image that received GPS tags.
type Tagged struct {
	Image
	QueryTime time.Time // RefinedTime shifted onto the track clock
	Fix       track.Fix // bearing already offset and normalized
}

// Skip is a per-image failure. The batch continues after a Skip.
type Skip struct {
	Path   string
	Reason error
}

func (s *Skip) Error() string {
	return fmt.Sprintf("skipping %s: %v", s.Path, s.Reason)
}

func (s *Skip) Unwrap() error { return s.Reason }

// Report is the outcome of one Tagger run.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Tagged   []Tagged
	Skipped  []Skip
}

// Total returns the number of images processed.
func (r *Report) Total() int { return len(r.Tagged) + len(r.Skipped) }

// Elapsed returns the wall time of the run.
func (r *Report) Elapsed() time.Duration { return r.Finished.Sub(r.Started) }
