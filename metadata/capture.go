package metadata

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nakaner/mapillary-tools/utils"
)

// ErrNoCaptureTime is returned when an image has no DateTimeOriginal tag.
var ErrNoCaptureTime = errors.New("no capture time in image metadata")

// Reader reads the capture time of an image.
type Reader interface {
	CaptureTime(path string) (time.Time, error)
}

// Writer stores GPS tags in an image.
type Writer interface {
	WriteGPS(path string, rec GPSRecord) error
}

// ParseCaptureTime combines DateTimeOriginal and the optional
// SubSecTimeOriginal into one timestamp, with the wall clock read in loc.
func ParseCaptureTime(dateTime, subSec string, loc *time.Location) (time.Time, error) {
	if dateTime == "" {
		return time.Time{}, ErrNoCaptureTime
	}
	t, err := utils.ParseExifDateTime(dateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid DateTimeOriginal: %w", err)
	}
	frac, err := utils.ParseSubSec(subSec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SubSecTimeOriginal: %w", err)
	}
	return t.Add(frac), nil
}
