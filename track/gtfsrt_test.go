package track

import (
	"errors"
	"math"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

type vehicleFix struct {
	entity string
	id     string
	label  string
	lat    float32
	lon    float32
	ts     uint64
}

func buildFeed(t *testing.T, headerTS uint64, fixes ...vehicleFix) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
	}
	if headerTS != 0 {
		fm.Header.Timestamp = proto.Uint64(headerTS)
	}
	for _, f := range fixes {
		vp := &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(f.lat),
				Longitude: proto.Float32(f.lon),
			},
		}
		if f.id != "" {
			vp.Vehicle.Id = proto.String(f.id)
		}
		if f.label != "" {
			vp.Vehicle.Label = proto.String(f.label)
		}
		if f.ts != 0 {
			vp.Timestamp = proto.Uint64(f.ts)
		}
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id:      proto.String(f.entity),
			Vehicle: vp,
		})
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}

func TestDecodeVehiclePositions(t *testing.T) {
	data := buildFeed(t, 1417093300,
		vehicleFix{entity: "1", id: "bus-42", lat: 42.69, lon: 23.32, ts: 1417093290},
		vehicleFix{entity: "2", id: "bus-7", lat: 42.70, lon: 23.33, ts: 1417093291},
		vehicleFix{entity: "3", label: "bus-42", lat: 42.71, lon: 23.34},
	)

	s, err := DecodeVehiclePositions(data, "bus-42")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 samples for bus-42, got %d", len(s.Points))
	}
	if s.Points[0].Time.Unix() != 1417093290 {
		t.Errorf("expected entity timestamp, got %v", s.Points[0].Time)
	}
	if s.Points[1].Time.Unix() != 1417093300 {
		t.Errorf("expected header timestamp fallback, got %v", s.Points[1].Time)
	}
	if math.Abs(s.Points[0].Latitude-42.69) > 1e-5 {
		t.Errorf("unexpected latitude %v", s.Points[0].Latitude)
	}
	if s.Points[0].Elevation != nil {
		t.Errorf("gtfs-rt positions carry no elevation")
	}
}

func TestDecodeVehiclePositionsSingleVehicle(t *testing.T) {
	data := buildFeed(t, 0,
		vehicleFix{entity: "1", id: "tram-1", lat: 1, lon: 1, ts: 100},
		vehicleFix{entity: "2", id: "tram-1", lat: 2, lon: 2, ts: 110},
		vehicleFix{entity: "3", id: "tram-1", lat: 3, lon: 3},
	)
	s, err := DecodeVehiclePositions(data, "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// the third entity has no timestamp and the header has none either
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(s.Points))
	}
}

func TestDecodeVehiclePositionsAmbiguous(t *testing.T) {
	data := buildFeed(t, 100,
		vehicleFix{entity: "1", id: "a", lat: 1, lon: 1},
		vehicleFix{entity: "2", id: "b", lat: 2, lon: 2},
	)
	if _, err := DecodeVehiclePositions(data, ""); !errors.Is(err, ErrAmbiguousVehicle) {
		t.Fatalf("expected ErrAmbiguousVehicle, got %v", err)
	}
}

func TestDecodeVehiclePositionsUnlabeledVehicles(t *testing.T) {
	tests := []struct {
		name  string
		fixes []vehicleFix
	}{
		{
			name: "no descriptor ids",
			fixes: []vehicleFix{
				{entity: "e1", lat: 10, lon: 10},
				{entity: "e2", lat: 50, lon: 50},
			},
		},
		{
			name: "unlabeled then labeled",
			fixes: []vehicleFix{
				{entity: "e1", lat: 10, lon: 10},
				{entity: "e2", id: "bus-7", lat: 50, lon: 50},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildFeed(t, 100, tt.fixes...)
			s, err := DecodeVehiclePositions(data, "")
			if !errors.Is(err, ErrAmbiguousVehicle) {
				t.Fatalf("expected ErrAmbiguousVehicle, got %d points, err %v", len(s.Points), err)
			}
		})
	}

	data := buildFeed(t, 100,
		vehicleFix{entity: "e1", lat: 10, lon: 10},
		vehicleFix{entity: "e2", lat: 50, lon: 50},
	)
	s, err := DecodeVehiclePositions(data, "e2")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(s.Points) != 1 || s.Points[0].Latitude != 50 {
		t.Errorf("expected entity e2 only, got %+v", s.Points)
	}
}

func TestDecodeVehiclePositionsGarbage(t *testing.T) {
	if _, err := DecodeVehiclePositions([]byte{0xff, 0xff, 0xff}, ""); err == nil {
		t.Fatal("expected error for invalid protobuf")
	}
}
