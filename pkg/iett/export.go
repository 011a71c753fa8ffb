package iett

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/exp/slices"
)

// WriteScheduleCSV writes departures as CSV ordered by direction, day type and time.
// The input slice is not modified.
func WriteScheduleCSV(w io.Writer, seferler []PlanlananSefer) error {
	rows := slices.Clone(seferler)
	if rows == nil {
		rows = []PlanlananSefer{}
	}

	slices.SortStableFunc(rows, func(a, b PlanlananSefer) int {
		if c := strings.Compare(a.Direction, b.Direction); c != 0 {
			return c
		}
		if c := strings.Compare(a.DayType, b.DayType); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})

	return gocsv.Marshal(&rows, w)
}
