package mapillarytools

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nakaner/mapillary-tools/track"
)

// TrackFormat identifies a track file encoding.
type TrackFormat string

const (
	FormatGPX    TrackFormat = "gpx"
	FormatGTFSRT TrackFormat = "gtfsrt"
)

// DetectTrackFormat picks the decoder for a track file from its extension,
// falling back to sniffing for an XML document.
func DetectTrackFormat(name string, data []byte) TrackFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gpx", ".xml":
		return FormatGPX
	case ".pb", ".pbf", ".bin":
		return FormatGTFSRT
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FormatGPX
	}
	return FormatGTFSRT
}

// DecodeTrack decodes one track file. vehicleID selects the vehicle of a
// GTFS-Realtime feed and is ignored for GPX.
func DecodeTrack(name string, data []byte, vehicleID string) (track.Samples, error) {
	var (
		s   track.Samples
		err error
	)
	switch DetectTrackFormat(name, data) {
	case FormatGPX:
		s, err = track.DecodeGPX(data)
	default:
		s, err = track.DecodeVehiclePositions(data, vehicleID)
	}
	if err != nil {
		return track.Samples{}, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
