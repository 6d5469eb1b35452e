// Package metadata reads image capture times and writes GPS tags.
//
// The Reader and Writer interfaces are the boundary to image files. The
// Exiftool type implements both on top of a long-running exiftool process;
// tests and other callers may supply their own implementations.
//
// EncodeFix turns an interpolated fix into a GPSRecord, the exact set of EXIF
// GPS values to store: degree/minute/second rationals for the coordinates,
// hundredths of a degree for the image direction and tenths of a meter for the
// altitude, plus the fixed WGS-84 datum and true-north reference.
package metadata
