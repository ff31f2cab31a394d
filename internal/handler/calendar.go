package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/calendar"
	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// CalendarHandler exposes the external calendar integration: the OAuth
// connect flow and a read-only event listing.  When the integration is
// not configured (Google is nil) every endpoint answers 503.
type CalendarHandler struct {
	Google *calendar.GoogleSource
}

// NewCalendarHandler constructs a CalendarHandler.  A nil source is
// allowed and means the integration is disabled.
func NewCalendarHandler(google *calendar.GoogleSource) *CalendarHandler {
	return &CalendarHandler{Google: google}
}

func (h *CalendarHandler) disabled(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "calendar integration not configured"})
}

// Connect handles GET /v1/calendar/connect and returns the Google
// consent URL for the authenticated artist.
func (h *CalendarHandler) Connect(c echo.Context) error {
	if h.Google == nil {
		return h.disabled(c)
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"auth_url": h.Google.AuthURL(uid)})
}

// Callback handles GET /v1/calendar/callback.  Google redirects the
// browser here, so the route is unauthenticated; the artist is
// recovered from the state parameter issued by Connect.
func (h *CalendarHandler) Callback(c echo.Context) error {
	if h.Google == nil {
		return h.disabled(c)
	}
	code := c.QueryParam("code")
	if code == "" {
		return respondError(c, repository.Invalid("code", "authorization code required"))
	}
	var artistID uint64
	var issued int64
	if _, err := fmt.Sscanf(c.QueryParam("state"), "artist_%d_%d", &artistID, &issued); err != nil || artistID == 0 {
		return respondError(c, repository.Invalid("state", "unrecognized state parameter"))
	}
	if err := h.Google.Exchange(c.Request().Context(), artistID, code); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to exchange authorization code"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "calendar connected"})
}

// Events handles GET /v1/calendar/events?start=&end= for the
// authenticated artist.  Dates are YYYY-MM-DD; the default window is
// the next month.  An artist without a connected calendar gets an
// empty list.
func (h *CalendarHandler) Events(c echo.Context) error {
	if h.Google == nil {
		return h.disabled(c)
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 1, 0)
	if s := c.QueryParam("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return respondError(c, repository.Invalid("start", "must be YYYY-MM-DD"))
		}
		from = t
	}
	if s := c.QueryParam("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return respondError(c, repository.Invalid("end", "must be YYYY-MM-DD"))
		}
		to = t.AddDate(0, 0, 1) // include the whole end date
	}
	if !to.After(from) {
		return respondError(c, repository.Invalid("end", "must be after start"))
	}

	events, err := h.Google.ListEvents(c.Request().Context(), uid, from, to)
	if err != nil {
		return respondError(c, err)
	}
	if events == nil {
		events = []model.ExternalEvent{}
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}
