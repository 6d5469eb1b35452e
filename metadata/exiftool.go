package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/barasher/go-exiftool"
)

const (
	tagDateTimeOriginal   = "DateTimeOriginal"
	tagSubSecTimeOriginal = "SubSecTimeOriginal"
)

// Exiftool reads and writes image metadata through a stay-open exiftool
// process. It is not safe for concurrent use.
type Exiftool struct {
	et  *exiftool.Exiftool
	loc *time.Location
}

// NewExiftool starts exiftool. binary may be empty to use the one on PATH.
// Capture times are interpreted in loc (UTC when nil).
func NewExiftool(binary string, loc *time.Location) (*Exiftool, error) {
	var opts []func(*exiftool.Exiftool) error
	if binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Exiftool{et: et, loc: loc}, nil
}

// CaptureTime implements Reader.
func (e *Exiftool) CaptureTime(path string) (time.Time, error) {
	fms := e.et.ExtractMetadata(path)
	if len(fms) != 1 {
		return time.Time{}, fmt.Errorf("exiftool returned %d results for %s", len(fms), path)
	}
	fm := fms[0]
	if fm.Err != nil {
		return time.Time{}, fm.Err
	}
	dt, err := fm.GetString(tagDateTimeOriginal)
	if errors.Is(err, exiftool.ErrKeyNotFound) {
		return time.Time{}, ErrNoCaptureTime
	}
	if err != nil {
		return time.Time{}, err
	}
	return ParseCaptureTime(dt, fieldString(fm.Fields[tagSubSecTimeOriginal]), e.loc)
}

// WriteGPS implements Writer.
func (e *Exiftool) WriteGPS(path string, rec GPSRecord) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	for k, v := range rec.Fields() {
		fm.SetString(k, v)
	}
	fms := []exiftool.FileMetadata{fm}
	e.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("write gps tags: %w", fms[0].Err)
	}
	return nil
}

// Close stops the exiftool process.
func (e *Exiftool) Close() error {
	return e.et.Close()
}

// fieldString renders an exiftool JSON value. Numeric-looking sub-second
// values arrive as float64.
func fieldString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
