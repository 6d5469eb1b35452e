// Package geo provides the spherical geometry used by the geotagger.
//
// It contains:
//   - Initial bearing (forward azimuth) between two positions
//   - Bearing offset and normalization into [0, 360)
//   - Haversine distance
//   - Decimal degree to degree/minute/second conversion for EXIF encoding
//
// All angles are decimal degrees. Positions are WGS-84 latitude/longitude pairs
// treated as points on a sphere.
package geo
