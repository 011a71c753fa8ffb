package iett

import (
	"context"
	"math"

	"github.com/travigo/iett/pkg/soap"
	"golang.org/x/exp/slices"
)

const MethodDurakDetay = "DurakDetay_GYY_wYonAdi"

// GetDurakDetay returns the stops along both directions of a line. The service answers
// with DataSet XML rather than JSON. Records come back in upstream order.
func (c *Client) GetDurakDetay(ctx context.Context, hatKodu string) ([]DurakDetay, error) {
	body, err := c.call(ctx, c.Endpoints.IBB, MethodDurakDetay, map[string]string{"hat_kodu": hatKodu}, c.Freshness.RouteStops)
	if err != nil {
		return []DurakDetay{}, err
	}

	return ParseDurakDetay(body), nil
}

// ParseDurakDetay maps every <Table> block of body to a DurakDetay.
// Missing or unparseable numbers become 0, so a SIRANO of 0 may mean either.
func ParseDurakDetay(body string) []DurakDetay {
	tables := soap.ScanTables(body)
	duraklar := make([]DurakDetay, 0, len(tables))

	for _, table := range tables {
		duraklar = append(duraklar, DurakDetay{
			LineCode:      table.Text("HATKODU"),
			Direction:     table.Text("YON"),
			DirectionName: table.Text("YON_ADI"),
			Sequence:      table.Int("SIRANO"),
			StopCode:      table.Text("DURAKKODU"),
			StopName:      table.Text("DURAKADI"),
			X:             table.Float("XKOORDINATI"),
			Y:             table.Float("YKOORDINATI"),
			StopType:      table.Text("DURAKTIPI"),
			Zone:          table.Text("ISLETMEBOLGE"),
			SubZone:       table.Text("ISLETMEALTBOLGE"),
			District:      table.Text("ILCEADI"),
		})
	}

	return duraklar
}

// Directions lists the distinct directions of duraklar in first seen order
func Directions(duraklar []DurakDetay) []string {
	directions := []string{}
	for _, durak := range duraklar {
		if !slices.Contains(directions, durak.Direction) {
			directions = append(directions, durak.Direction)
		}
	}

	return directions
}

// RouteStops returns the stops of one direction in route order
func RouteStops(duraklar []DurakDetay, direction string) []DurakDetay {
	route := []DurakDetay{}
	for _, durak := range duraklar {
		if durak.Direction == direction {
			route = append(route, durak)
		}
	}

	slices.SortStableFunc(route, func(a, b DurakDetay) int {
		return a.Sequence - b.Sequence
	})

	return route
}

const earthRadiusKm = 6371.0

// RouteDistanceKm sums the great circle distance between consecutive stops.
// X is longitude and Y latitude. Stops without coordinates are skipped.
func RouteDistanceKm(route []DurakDetay) float64 {
	var total float64
	var previous *DurakDetay

	for i := range route {
		if route[i].X == 0 && route[i].Y == 0 {
			continue
		}

		if previous != nil {
			total += haversineKm(previous.Y, previous.X, route[i].Y, route[i].X)
		}
		previous = &route[i]
	}

	return total
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
