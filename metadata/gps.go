package metadata

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Nakaner/mapillary-tools/geo"
	"github.com/Nakaner/mapillary-tools/track"
)

const (
	// MapDatum is written to GPSMapDatum.
	MapDatum = "WGS-84"
	// VersionID is written to GPSVersionID.
	VersionID = "2 0 0 0"
	// TrueNorth is the GPSImgDirectionRef value.
	TrueNorth = "T"

	AboveSeaLevel uint8 = 0
	BelowSeaLevel uint8 = 1
)

// Rational is an EXIF unsigned rational.
type Rational struct {
	Num int64
	Den int64
}

// Float64 returns Num/Den, or 0 for a zero denominator.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// decimal renders the rational with as many digits as its denominator needs.
func (r Rational) decimal() string {
	return strconv.FormatFloat(r.Float64(), 'f', -1, 64)
}

// GPSRecord holds the GPS tag values written for one image.
type GPSRecord struct {
	Latitude        [3]Rational
	LatitudeRef     string
	Longitude       [3]Rational
	LongitudeRef    string
	Altitude        *Rational // nil when the fix has no elevation
	AltitudeRef     uint8
	ImgDirection    Rational
	ImgDirectionRef string
	MapDatum        string
	VersionID       string
}

// EncodeFix converts a fix into EXIF GPS values. Seconds keep six decimals,
// the bearing two and the altitude one; each is truncated, not rounded.
func EncodeFix(fix track.Fix) GPSRecord {
	lat := geo.Latitude(fix.Latitude)
	lon := geo.Longitude(fix.Longitude)

	rec := GPSRecord{
		Latitude:        dmsRationals(lat),
		LatitudeRef:     lat.Ref,
		Longitude:       dmsRationals(lon),
		LongitudeRef:    lon.Ref,
		ImgDirection:    Rational{Num: int64(fix.Bearing * 100), Den: 100},
		ImgDirectionRef: TrueNorth,
		MapDatum:        MapDatum,
		VersionID:       VersionID,
	}
	if fix.Elevation != nil {
		e := *fix.Elevation
		alt := int64(e * 10)
		if alt < 0 {
			alt = -alt
		}
		rec.Altitude = &Rational{Num: alt, Den: 10}
		rec.AltitudeRef = AboveSeaLevel
		if e < 0 {
			rec.AltitudeRef = BelowSeaLevel
		}
	}
	return rec
}

func dmsRationals(d geo.DMS) [3]Rational {
	return [3]Rational{
		{Num: int64(d.Degrees), Den: 1},
		{Num: int64(d.Minutes), Den: 1},
		{Num: int64(math.Floor(d.Seconds * 1e6)), Den: 1e6},
	}
}

// exiftool print-converted values for the reference tags
var refNames = map[string]string{
	"N": "North",
	"S": "South",
	"E": "East",
	"W": "West",
	"T": "True North",
	"M": "Magnetic North",
}

// Fields renders the record as exiftool tag assignments.
func (r GPSRecord) Fields() map[string]string {
	f := map[string]string{
		"GPSLatitude":        dmsString(r.Latitude),
		"GPSLatitudeRef":     refNames[r.LatitudeRef],
		"GPSLongitude":       dmsString(r.Longitude),
		"GPSLongitudeRef":    refNames[r.LongitudeRef],
		"GPSImgDirection":    r.ImgDirection.decimal(),
		"GPSImgDirectionRef": refNames[r.ImgDirectionRef],
		"GPSMapDatum":        r.MapDatum,
		"GPSVersionID":       r.VersionID,
	}
	if r.Altitude != nil {
		f["GPSAltitude"] = r.Altitude.decimal()
		f["GPSAltitudeRef"] = "Above Sea Level"
		if r.AltitudeRef == BelowSeaLevel {
			f["GPSAltitudeRef"] = "Below Sea Level"
		}
	}
	return f
}

func dmsString(d [3]Rational) string {
	return fmt.Sprintf("%d %d %s", d[0].Num, d[1].Num, d[2].decimal())
}
