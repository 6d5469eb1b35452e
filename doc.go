// Package mapillarytools geotags JPEG images from a recorded position track.
//
// A Tagger reads each image's capture time, refines it to sub-second
// precision when a shot interval is known, shifts it onto the track clock,
// interpolates a position and bearing on the track and writes the result
// back as EXIF GPS tags:
//
//	trk, _ := track.Loader{}.Load(samples)
//	et, _ := metadata.NewExiftool("", time.UTC)
//	defer et.Close()
//	rep, err := mapillarytools.NewTagger(trk, et, et, mapillarytools.Options{
//		ClockOffset: 60 * time.Second,
//		Interval:    2 * time.Second,
//	}, logger).Run(paths)
//
// Images that cannot be tagged are reported in Report.Skipped and do not stop
// the batch.
package mapillarytools
