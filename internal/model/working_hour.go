package model

import "time"

// WorkingHour is one entry of an artist's recurring weekly schedule.
// There is exactly one record per day of week per artist; the full
// 7-entry set is always replaced wholesale when the artist saves
// their schedule, never patched per day.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist the schedule belongs to.
//  DayOfWeek – 0 (Sunday) through 6 (Saturday).
//  StartTime – opening time as HH:MM:SS, local to the artist.
//  EndTime   – closing time as HH:MM:SS, local to the artist.
//  IsDayOff  – when true the artist does not work that day and the
//              start/end times are ignored (canonically 00:00:00).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type WorkingHour struct {
	ID        uint64    `json:"id,omitempty"` // working_hours.id
	ArtistID  uint64    `json:"artist_id"`    // working_hours.artist_id
	DayOfWeek int       `json:"day_of_week"`  // working_hours.day_of_week
	StartTime string    `json:"start_time"`   // working_hours.start_time
	EndTime   string    `json:"end_time"`     // working_hours.end_time
	IsDayOff  bool      `json:"is_day_off"`   // working_hours.is_day_off
	CreatedAt time.Time `json:"-"`            // working_hours.created_at
	UpdatedAt time.Time `json:"-"`            // working_hours.updated_at
}

// midnight is the canonical time stored on day-off entries.
const midnight = "00:00:00"

// HasOpenDay reports whether at least one entry in the weekly set is
// not a day off.  An artist whose week contains no open day can never
// have their books open.
func HasOpenDay(hours []WorkingHour) bool {
	for _, h := range hours {
		if !h.IsDayOff {
			return true
		}
	}
	return false
}

// CanonicalizeWeek normalizes a weekly set in place: day-off entries
// get 00:00:00 for both start and end so that stale times saved before
// a day was switched off never leak back out.
func CanonicalizeWeek(hours []WorkingHour) {
	for i := range hours {
		if hours[i].IsDayOff {
			hours[i].StartTime = midnight
			hours[i].EndTime = midnight
		}
	}
}
