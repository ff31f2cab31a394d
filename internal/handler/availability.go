package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/availability"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/service"
)

// monthViewer is the slice of AvailabilityService the handler needs.
type monthViewer interface {
	MonthView(ctx context.Context, artistID uint64, bt availability.BookingType, year int, month time.Month) (service.MonthView, error)
}

// AvailabilityHandler serves the public booking calendar.
type AvailabilityHandler struct {
	Views monthViewer
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(views monthViewer) *AvailabilityHandler {
	if views == nil {
		panic("nil view service passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Views: views}
}

// GetArtistAvailability handles GET /v1/artists/:id/availability.
// Query parameters: type selects the booking type (default
// appointment); month selects the displayed month as YYYY-MM (default
// current month in the artist's timezone).  Closed books yield an
// empty day map, not an error.
func (h *AvailabilityHandler) GetArtistAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	bt := availability.BookingType(c.QueryParam("type"))
	if bt == "" {
		bt = availability.Appointment
	}
	if !bt.Valid() {
		return respondError(c, repository.Invalid("type", "must be consultation or appointment"))
	}

	var year int
	var month time.Month
	if m := c.QueryParam("month"); m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return respondError(c, repository.Invalid("month", "must be YYYY-MM"))
		}
		year, month = t.Year(), t.Month()
	}

	view, err := h.Views.MonthView(c.Request().Context(), id, bt, year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
