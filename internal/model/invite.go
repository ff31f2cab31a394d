package model

import "time"

// Invite statuses.
const (
	InviteSent     = "SENT"
	InviteRedeemed = "REDEEMED"
)

// Invite is an artist-initiated direct booking invitation for a guest
// on a specific date.  Invites deliberately bypass the availability
// engine: an artist may invite a guest on a date the engine marks
// closed or fully booked, for example to schedule an exception.
//
// The redemption token is returned to the caller exactly once at
// creation time; only its bcrypt hash is persisted.
type Invite struct {
	ID          uint64     `json:"id"`           // invites.id
	ArtistID    uint64     `json:"artist_id"`    // invites.artist_id
	Date        time.Time  `json:"-"`            // invites.date (DATE column)
	BookingType string     `json:"booking_type"` // invites.booking_type
	GuestEmail  string     `json:"guest_email"`  // invites.guest_email
	GuestName   string     `json:"guest_name,omitempty"`
	Note        string     `json:"note,omitempty"`
	Status      string     `json:"status"` // invites.status
	TokenHash   string     `json:"-"`      // invites.token_hash, never serialized
	CreatedAt   time.Time  `json:"created_at"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

// DateString renders the invited date as YYYY-MM-DD for API payloads.
func (i Invite) DateString() string {
	return i.Date.Format("2006-01-02")
}
