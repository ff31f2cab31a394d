// Package calendar provides the external busy overlay: read-only
// events imported from a third-party calendar and shown on the booking
// calendar for context.  Overlay events never gate bookability.
package calendar

import (
	"context"
	"time"

	"github.com/inkdesk/artist-booking/internal/model"
)

// BusySource lists external events overlapping a window for one
// artist.  Implementations must be read-only and should return an
// empty slice with a nil error when the artist has no connected
// calendar, so the absence of an integration is not an error.
type BusySource interface {
	ListEvents(ctx context.Context, artistID uint64, from, to time.Time) ([]model.ExternalEvent, error)
}

// Disabled is the BusySource used when no calendar integration is
// configured.  It reports no events for anyone.
type Disabled struct{}

// ListEvents always returns an empty list.
func (Disabled) ListEvents(context.Context, uint64, time.Time, time.Time) ([]model.ExternalEvent, error) {
	return nil, nil
}
