package gtfsrt

import (
	"strconv"
	"strings"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/travigo/iett/pkg/iett"
	"google.golang.org/protobuf/proto"
)

const gtfsRealtimeVersion = "2.0"

// Istanbul has been on UTC+3 all year since 2016
var istanbul = time.FixedZone("TRT", 3*60*60)

const lastSeenLayout = "2006-01-02 15:04:05"

// VehiclePositions converts İETT vehicle locations into a full dataset GTFS-realtime feed.
// Vehicles without a usable position are left out.
func VehiclePositions(konumlar []iett.HatOtoKonum, now time.Time) *gtfs.FeedMessage {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
	}

	for _, konum := range konumlar {
		latitude, latOK := parseCoordinate(konum.Latitude)
		longitude, lonOK := parseCoordinate(konum.Longitude)
		if !latOK || !lonOK {
			continue
		}

		vehiclePosition := &gtfs.VehiclePosition{
			Trip: &gtfs.TripDescriptor{
				RouteId: proto.String(konum.LineCode),
			},
			Vehicle: &gtfs.VehicleDescriptor{
				Id:    proto.String(konum.DoorNumber),
				Label: proto.String(konum.DoorNumber),
			},
			Position: &gtfs.Position{
				Latitude:  proto.Float32(float32(latitude)),
				Longitude: proto.Float32(float32(longitude)),
			},
		}

		if directionID, ok := directionID(konum.Direction); ok {
			vehiclePosition.Trip.DirectionId = proto.Uint32(directionID)
		}
		if konum.NearestStopCode != "" {
			vehiclePosition.StopId = proto.String(konum.NearestStopCode)
		}
		if lastSeen, err := time.ParseInLocation(lastSeenLayout, konum.LastSeen, istanbul); err == nil {
			vehiclePosition.Timestamp = proto.Uint64(uint64(lastSeen.Unix()))
		}

		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id:      proto.String(konum.LineCode + ":" + konum.DoorNumber),
			Vehicle: vehiclePosition,
		})
	}

	return feed
}

func Marshal(feed *gtfs.FeedMessage) ([]byte, error) {
	return proto.Marshal(feed)
}

func parseCoordinate(value string) (float64, bool) {
	value = strings.Replace(strings.TrimSpace(value), ",", ".", 1)
	if value == "" {
		return 0, false
	}

	coordinate, err := strconv.ParseFloat(value, 64)
	if err != nil || coordinate == 0 {
		return 0, false
	}

	return coordinate, true
}

func directionID(direction string) (uint32, bool) {
	switch direction {
	case iett.DirectionOutbound:
		return 0, true
	case iett.DirectionInbound:
		return 1, true
	}

	return 0, false
}
