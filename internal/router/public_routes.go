package router

import (
	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/handler"
)

// RegisterPublic registers the unauthenticated client-facing routes:
// the artist directory, the per-artist booking calendar, and guest
// invite redemption. The optional cache middleware wraps only the
// directory endpoints — availability is computed fresh on every
// request and must never be served from cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, a *handler.AvailabilityHandler, inv *handler.InviteHandler, cache echo.MiddlewareFunc) {
	// Directory browsing changes rarely; cache it when Redis is up.
	e.GET("/v1/artists", p.GetArtists, cache)
	e.GET("/v1/artists/:id", p.GetArtist, cache)

	// Calendar view a client sees when picking a date.
	e.GET("/v1/artists/:id/availability", a.GetArtistAvailability)

	// Guests land here from the invitation link; the single-use token
	// in the body is their only credential.
	e.POST("/v1/invites/:id/redeem", inv.RedeemInvite)
}
