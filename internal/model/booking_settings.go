package model

import "time"

// BookingSettings holds an artist's rates and the master booking gate.
// BooksOpen gates the whole availability computation: when it is false
// no date is ever offered as bookable, regardless of what the weekly
// schedule says.
//
// Fields:
//  ArtistID              – artist the settings belong to (primary key).
//  BooksOpen             – master open/closed flag for client bookings.
//  HourlyRateCents       – hourly rate in cents.
//  DepositAmountCents    – deposit required for session bookings, in cents.
//  ConsultationFeeCents  – consultation fee in cents (0 = free).
//  MinimumSessionMinutes – shortest bookable session length.
//  Timezone              – IANA zone name for day-boundary arithmetic.
//  UpdatedAt             – last update timestamp.
type BookingSettings struct {
	ArtistID              uint64    `json:"artist_id"`               // booking_settings.artist_id
	BooksOpen             bool      `json:"books_open"`              // booking_settings.books_open
	HourlyRateCents       uint32    `json:"hourly_rate_cents"`       // booking_settings.hourly_rate_cents
	DepositAmountCents    uint32    `json:"deposit_amount_cents"`    // booking_settings.deposit_amount_cents
	ConsultationFeeCents  uint32    `json:"consultation_fee_cents"`  // booking_settings.consultation_fee_cents
	MinimumSessionMinutes uint32    `json:"minimum_session_minutes"` // booking_settings.minimum_session_minutes
	Timezone              string    `json:"timezone"`                // booking_settings.timezone
	UpdatedAt             time.Time `json:"-"`                       // booking_settings.updated_at
}

// Location resolves the artist's IANA timezone, falling back to UTC
// when the field is empty or unparseable.  All day-boundary arithmetic
// for an artist runs in this location.
func (s BookingSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
