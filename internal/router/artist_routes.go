package router

import (
	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/handler"
	"github.com/inkdesk/artist-booking/internal/middleware"
)

// RegisterArtist registers ARTIST-scoped endpoints under /v1. All
// routes require a valid access token with the ARTIST role; tokens are
// issued by the external auth service and verified here with the
// shared secret. The Google OAuth callback is the one exception: it
// arrives as a browser redirect and authenticates via the state
// parameter instead.
func RegisterArtist(e *echo.Echo, hours *handler.HoursHandler, settings *handler.SettingsHandler, inv *handler.InviteHandler, cal *handler.CalendarHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ARTIST"),
	)

	// ---- Weekly schedule ----
	g.GET("/artists/:id/working-hours", hours.GetWorkingHours)
	g.PUT("/artists/:id/working-hours", hours.PutWorkingHours)

	// ---- Booking settings, including the books_open gate ----
	g.GET("/artists/:id/settings", settings.GetSettings)
	g.PUT("/artists/:id/settings", settings.PutSettings)

	// ---- Direct invitations ----
	g.POST("/appointments/invite", inv.SendInvite)
	g.GET("/artists/:id/invites", inv.ListInvites)

	// ---- External calendar integration ----
	g.GET("/calendar/connect", cal.Connect)
	g.GET("/calendar/events", cal.Events)

	// Google redirects the artist's browser here; no bearer token.
	e.GET("/v1/calendar/callback", cal.Callback)
}
