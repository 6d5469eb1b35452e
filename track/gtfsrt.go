package track

import (
	"errors"
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrAmbiguousVehicle is returned when no vehicle id is given and a feed
// carries positions for more than one vehicle.
var ErrAmbiguousVehicle = errors.New("feed contains several vehicles, select one by id")

// DecodeVehiclePositions extracts the positions of one vehicle from a
// GTFS-Realtime VehiclePositions FeedMessage. Each snapshot contributes at most
// one sample per entity; a recorded log is several snapshots decoded one by one
// and passed together to Loader.Load.
//
// Vehicles are matched on VehicleDescriptor.id, falling back to label and then
// to the entity id. An empty
// vehicleID accepts a feed that carries a single vehicle. Entity timestamps win
// over the feed header timestamp; entities with neither are dropped.
func DecodeVehiclePositions(data []byte, vehicleID string) (Samples, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return Samples{}, fmt.Errorf("parse gtfs-rt feed: %w", err)
	}
	headerTS := fm.GetHeader().GetTimestamp()

	var s Samples
	seen, first := "", true
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil || vp.Position == nil {
			continue
		}
		id := vehicleKey(e, vp)
		if vehicleID != "" {
			if id != vehicleID {
				continue
			}
		} else {
			if !first && id != seen {
				return Samples{}, ErrAmbiguousVehicle
			}
			seen, first = id, false
		}

		ts := vp.GetTimestamp()
		if ts == 0 {
			ts = headerTS
		}
		if ts == 0 {
			continue
		}
		s.Points = append(s.Points, TrackPoint{
			Time:      time.Unix(int64(ts), 0).UTC(),
			Latitude:  float64(vp.GetPosition().GetLatitude()),
			Longitude: float64(vp.GetPosition().GetLongitude()),
		})
	}
	return s, nil
}

// vehicleKey identifies the vehicle of an entity: descriptor id, then label,
// then the entity id.
func vehicleKey(e *gtfsrtpb.FeedEntity, vp *gtfsrtpb.VehiclePosition) string {
	if id := vp.GetVehicle().GetId(); id != "" {
		return id
	}
	if label := vp.GetVehicle().GetLabel(); label != "" {
		return label
	}
	return e.GetId()
}
