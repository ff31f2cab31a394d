package model

import "time"

// Appointment statuses.  BOOKED and UNAVAILABLE commit the whole day:
// any appointment carrying one of them removes its date from the
// bookable set for both booking types.  PENDING and CONFIRMED are
// bookkeeping states owned by the booking subsystem and do not block
// availability on their own.
const (
	AppointmentBooked      = "BOOKED"
	AppointmentUnavailable = "UNAVAILABLE"
	AppointmentPending     = "PENDING"
	AppointmentConfirmed   = "CONFIRMED"
)

// Appointment is a read-only view of a committed or requested time
// range on an artist's calendar.  The availability engine treats these
// records purely as evidence that a date is taken; it never writes
// through them.
//
// Fields:
//  ID          – primary key identifier.
//  ArtistID    – artist the appointment belongs to.
//  StartsAt    – when the appointment begins.
//  EndsAt      – when the appointment ends (after StartsAt).
//  Status      – one of the Appointment* constants above.
//  BookingType – "consultation" or "appointment".
//  Note        – optional free-form note attached by the artist.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Appointment struct {
	ID          uint64    `json:"id"`           // appointments.id
	ArtistID    uint64    `json:"artist_id"`    // appointments.artist_id
	StartsAt    time.Time `json:"starts_at"`    // appointments.starts_at
	EndsAt      time.Time `json:"ends_at"`      // appointments.ends_at
	Status      string    `json:"status"`       // appointments.status
	BookingType string    `json:"booking_type"` // appointments.booking_type
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"-"` // appointments.created_at
	UpdatedAt   time.Time `json:"-"` // appointments.updated_at
}

// BlocksDay reports whether this appointment removes its date(s) from
// the bookable set.
func (a Appointment) BlocksDay() bool {
	return a.Status == AppointmentBooked || a.Status == AppointmentUnavailable
}
