// Package utils provides small formatting helpers shared by the geotagger.
//
// It contains:
//   - EXIF date/time and sub-second parsing
//   - Timestamp formatting for log output
package utils
