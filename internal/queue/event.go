// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// InviteSentEvent is published when an artist sends a direct booking
// invitation. It carries enough information for downstream consumers
// to notify the guest or feed analytics without querying the primary
// database. The redemption token itself is never published.
type InviteSentEvent struct {
	InviteID    uint64 `json:"invite_id"`
	ArtistID    uint64 `json:"artist_id"`
	ArtistName  string `json:"artist_name,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	BookingType string `json:"booking_type"`
	GuestEmail  string `json:"guest_email"`
	GuestName   string `json:"guest_name,omitempty"`
	Note        string `json:"note,omitempty"`
	SentAt      string `json:"sent_at"`
}
