// Package availability implements the pure per-day availability
// computation for an artist's booking calendar.  The engine is a plain
// function over already-fetched inputs: it holds no state, performs no
// I/O, and produces identical output for identical input.
package availability

import (
	"time"

	"github.com/inkdesk/artist-booking/internal/model"
)

// BookingType selects which kind of booking a client is asking for.
// Both types currently share the same day-level open/closed
// computation; the distinction exists so that clients and summaries
// can be filtered per type without changing the engine.
type BookingType string

const (
	Consultation BookingType = "consultation"
	Appointment  BookingType = "appointment"
)

// Valid reports whether bt is one of the two known booking types.
func (bt BookingType) Valid() bool {
	return bt == Consultation || bt == Appointment
}

// dateKey is the canonical YYYY-MM-DD map key format.
const dateKey = "2006-01-02"

// Entry is the availability of a single calendar date.  Dates that are
// closed (day off, outside the schedule, or fully booked) are omitted
// from the result map entirely; presence in the map means the date is
// offered for booking.
type Entry struct {
	Date         string `json:"date"`
	Consultation bool   `json:"consultation"`
	Appointment  bool   `json:"appointment"`
}

// ForType returns the per-type flag of the entry.
func (e Entry) ForType(bt BookingType) bool {
	if bt == Consultation {
		return e.Consultation
	}
	return e.Appointment
}

// Input carries everything the engine needs for one computation.  All
// slices are read-only from the engine's point of view.
type Input struct {
	BooksOpen    bool
	WorkingHours []model.WorkingHour
	Appointments []model.Appointment
	Events       []model.ExternalEvent
}

// Result is the outcome of one availability computation.  Days maps
// YYYY-MM-DD to the bookable entry for that date.  Busy is the set of
// dates covered by external calendar events; it annotates the calendar
// for display and never removes a date from Days.
type Result struct {
	Days map[string]Entry
	Busy map[string]bool
}

// Compute produces the per-date availability map for the rolling
// window [start of asOf's day, last day of the month horizonMonths
// ahead], both ends inclusive.  Every day in the window is visited
// exactly once.
//
// A date is present in the result iff all of the following hold:
//   - BooksOpen is true and the weekly schedule has at least one open day,
//   - the date's day of week has a working-hours entry that is not a day off,
//   - no appointment with status BOOKED or UNAVAILABLE touches the date.
//
// Dates that make it in are open for both booking types at once; the
// engine has no sub-day slot granularity.  All date arithmetic runs in
// asOf's location, which callers set to the artist's timezone.
func Compute(in Input, asOf time.Time, horizonMonths int) Result {
	res := Result{Days: map[string]Entry{}, Busy: map[string]bool{}}
	if !in.BooksOpen || !model.HasOpenDay(in.WorkingHours) {
		return res
	}

	loc := asOf.Location()
	byWeekday := make(map[int]model.WorkingHour, len(in.WorkingHours))
	for _, h := range in.WorkingHours {
		byWeekday[h.DayOfWeek] = h
	}

	blocked := map[string]bool{}
	for _, a := range in.Appointments {
		if !a.BlocksDay() {
			continue
		}
		markDates(blocked, a.StartsAt.In(loc), a.EndsAt.In(loc))
	}
	for _, ev := range in.Events {
		markDates(res.Busy, ev.StartsAt.In(loc), ev.EndsAt.In(loc))
	}

	start := startOfDay(asOf)
	end := lastDayOfMonth(asOf, horizonMonths)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		h, ok := byWeekday[int(d.Weekday())]
		if !ok || h.IsDayOff {
			continue
		}
		key := d.Format(dateKey)
		if blocked[key] {
			continue
		}
		res.Days[key] = Entry{Date: key, Consultation: true, Appointment: true}
	}
	return res
}

// markDates adds every calendar date of [from, to] to set, inclusive
// of both boundary dates.
func markDates(set map[string]bool, from, to time.Time) {
	for d := startOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		set[d.Format(dateKey)] = true
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastDayOfMonth returns midnight on the final day of the month
// monthsAhead after t.  Day 0 of the following month normalizes to the
// last day of the target month, which also keeps month overflow sane
// (e.g. horizon end from Nov 30 lands on the last day of February).
func lastDayOfMonth(t time.Time, monthsAhead int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(monthsAhead)+1, 0, 0, 0, 0, 0, t.Location())
}
