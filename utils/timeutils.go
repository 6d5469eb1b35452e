package utils

import (
	"fmt"
	"strings"
	"time"
)

// ExifDateTimeLayout is the layout of EXIF DateTime* tags.
const ExifDateTimeLayout = "2006:01:02 15:04:05"

// ParseExifDateTime parses an EXIF DateTimeOriginal value. EXIF carries no
// zone, so the wall clock is interpreted in loc (UTC when nil).
func ParseExifDateTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	v := strings.TrimRight(strings.TrimSpace(value), "\x00")
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date/time")
	}
	return time.ParseInLocation(ExifDateTimeLayout, v, loc)
}

// ParseSubSec parses an EXIF SubSecTime* value. The digits are the decimal
// fraction of the second, so "5" is 500ms and "050" is 50ms.
func ParseSubSec(value string) (time.Duration, error) {
	v := strings.TrimRight(strings.TrimSpace(value), "\x00 ")
	if v == "" {
		return 0, nil
	}
	var d time.Duration
	scale := time.Second
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid sub-second value %q", value)
		}
		scale /= 10
		d += time.Duration(r-'0') * scale
	}
	return d, nil
}

// Iso8601 formats t with millisecond precision for log output.
func Iso8601(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000Z07:00")
}
