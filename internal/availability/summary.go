package availability

import (
	"fmt"
	"time"
)

// NoneAvailable is the sentinel summary value when the displayed month
// has no open date for the requested booking type.
const NoneAvailable = "None"

// Summary describes one displayed month of a computed availability
// map: how many dates are open for the active booking type and which
// one comes first.
type Summary struct {
	AvailableCount int    `json:"available_count"`
	NextAvailable  string `json:"next_available"`
}

// MonthSummary scans the displayed month in ascending calendar order
// and counts the dates open for the given booking type.  The first hit
// becomes NextAvailable; when the month holds none the sentinel "None"
// is reported.  Only the displayed month is considered, not the full
// horizon.
func MonthSummary(days map[string]Entry, year int, month time.Month, bt BookingType) Summary {
	sum := Summary{NextAvailable: NoneAvailable}
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= last; day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		e, ok := days[key]
		if !ok || !e.ForType(bt) {
			continue
		}
		sum.AvailableCount++
		if sum.NextAvailable == NoneAvailable {
			sum.NextAvailable = key
		}
	}
	return sum
}
