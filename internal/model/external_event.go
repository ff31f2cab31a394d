package model

import "time"

// ExternalEvent is a busy block imported from a third-party calendar
// (currently Google Calendar).  Events are display-only annotations on
// the artist's booking calendar: the date range [StartsAt, EndsAt],
// inclusive of both boundary dates, is shown as "busy" but never
// removes a date from the bookable set.
type ExternalEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	AllDay   bool      `json:"all_day"`
	Source   string    `json:"source"`
}
