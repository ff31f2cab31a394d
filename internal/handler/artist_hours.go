package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/service"
)

// HoursHandler serves the artist's weekly schedule.  Reads go straight
// to the store; writes route through the BookingStateController so the
// books_open gate stays consistent with the saved week.
type HoursHandler struct {
	Hours service.WorkingHoursReader
	State *service.BookingStateController
}

// NewHoursHandler constructs a HoursHandler. Both dependencies must be
// non-nil.
func NewHoursHandler(hours service.WorkingHoursReader, state *service.BookingStateController) *HoursHandler {
	if hours == nil || state == nil {
		panic("nil dependency passed to NewHoursHandler")
	}
	return &HoursHandler{Hours: hours, State: state}
}

// GetWorkingHours handles GET /v1/artists/:id/working-hours.  An
// artist that has never saved a schedule gets an empty list.
func (h *HoursHandler) GetWorkingHours(c echo.Context) error {
	id, err := requireSelf(c)
	if err != nil {
		return respondError(c, err)
	}
	hours, err := h.Hours.GetForArtist(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if hours == nil {
		hours = []model.WorkingHour{}
	}
	return c.JSON(http.StatusOK, echo.Map{"working_hours": hours})
}

// PutWorkingHours handles PUT /v1/artists/:id/working-hours.  The body
// must carry the full 7-entry week; open_books marks a pending intent
// to open the books once the saved week allows it.
func (h *HoursHandler) PutWorkingHours(c echo.Context) error {
	id, err := requireSelf(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Hours     []model.WorkingHour `json:"working_hours"`
		OpenBooks bool                `json:"open_books"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, settings, err := h.State.SaveWorkingHours(c.Request().Context(), id, body.Hours, body.OpenBooks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"working_hours": saved,
		"books_open":    settings.BooksOpen,
	})
}
