/*
Package track loads GPS tracks and interpolates positions along them.

A Track is an immutable, time-ordered sequence of TrackPoints built by a
Loader from one or more decoded sources. The package is data-source agnostic:
decoders accept raw bytes and never open files or URLs themselves.

# Decoding

	gpxBytes, _ := os.ReadFile("hike.gpx")
	samples, err := track.DecodeGPX(gpxBytes)

	// or a recorded GTFS-Realtime VehiclePositions snapshot
	samples, err := track.DecodeVehiclePositions(pbBytes, "bus-42")

# Loading

	loader := track.Loader{Location: time.Local} // nil keeps UTC
	trk, err := loader.Load(samples)
	if errors.Is(err, track.ErrEmptyTrack) {
	    // fatal for the run
	}

# Interpolation

	fix, err := trk.Interpolate(captureTime)
	var oor *track.OutOfRangeError
	if errors.As(err, &oor) {
	    // query outside the recorded time span, skip this image
	}

Latitude and longitude are interpolated linearly in degree space between the
two bracketing samples, which is accurate enough for the short segments a GPS
logger records. The bearing is the initial great-circle bearing across the
bracketing segment, not an instantaneous heading.
*/
package track
