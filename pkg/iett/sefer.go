package iett

import (
	"context"

	"golang.org/x/exp/slices"
)

const MethodGetPlanlananSeferSaati = "GetPlanlananSeferSaati_json"

var DirectionLabels = map[string]string{
	DirectionOutbound: "Gidiş",
	DirectionInbound:  "Dönüş",
}

var DayTypeLabels = map[string]string{
	DayTypeWeekday:  "Hafta İçi",
	DayTypeSaturday: "Cumartesi",
	DayTypeSunday:   "Pazar",
}

func (c *Client) GetPlanlananSeferSaati(ctx context.Context, hatKodu string) ([]PlanlananSefer, error) {
	return callJSON[PlanlananSefer](ctx, c, c.Endpoints.PlanlananSeferSaati, MethodGetPlanlananSeferSaati, map[string]string{"HatKodu": hatKodu}, c.Freshness.Schedule)
}

// ScheduleGroup is every departure time of a line for one direction and day type
type ScheduleGroup struct {
	Direction      string   `json:"direction"`
	DirectionLabel string   `json:"directionLabel"`
	DayType        string   `json:"dayType"`
	DayTypeLabel   string   `json:"dayTypeLabel"`
	RouteName      string   `json:"routeName"`
	ServiceType    string   `json:"serviceType"`
	Times          []string `json:"times"`
}

// GroupSchedule groups departures by direction and day type in first seen order.
// Times are sorted as strings, which is chronological for zero padded HH:mm.
func GroupSchedule(seferler []PlanlananSefer) []ScheduleGroup {
	groups := []ScheduleGroup{}
	groupIndex := map[[2]string]int{}

	for _, sefer := range seferler {
		key := [2]string{sefer.Direction, sefer.DayType}

		index, exists := groupIndex[key]
		if !exists {
			index = len(groups)
			groupIndex[key] = index

			groups = append(groups, ScheduleGroup{
				Direction:      sefer.Direction,
				DirectionLabel: labelOr(DirectionLabels, sefer.Direction),
				DayType:        sefer.DayType,
				DayTypeLabel:   labelOr(DayTypeLabels, sefer.DayType),
				RouteName:      sefer.LineName,
				ServiceType:    sefer.ServiceType,
				Times:          []string{},
			})
		}

		groups[index].Times = append(groups[index].Times, sefer.Time)
	}

	for i := range groups {
		slices.Sort(groups[i].Times)
	}

	return groups
}

func labelOr(labels map[string]string, code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}
