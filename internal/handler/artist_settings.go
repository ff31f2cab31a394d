package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/service"
)

// SettingsHandler serves per-artist booking settings.  Rate fields
// write straight through; the books_open gate always routes through
// the BookingStateController so its validation cannot be bypassed.
// The client-side toggle check is advisory UX; this server-side path
// is the authoritative one.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
	State    *service.BookingStateController
}

// NewSettingsHandler constructs a SettingsHandler. Both dependencies
// must be non-nil.
func NewSettingsHandler(settings *repository.SettingsRepo, state *service.BookingStateController) *SettingsHandler {
	if settings == nil || state == nil {
		panic("nil dependency passed to NewSettingsHandler")
	}
	return &SettingsHandler{Settings: settings, State: state}
}

// GetSettings handles GET /v1/artists/:id/settings.  Artists that have
// never configured booking get the closed defaults rather than a 404,
// so the dashboard can always render the form.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	id, err := requireSelf(c)
	if err != nil {
		return respondError(c, err)
	}
	settings, err := h.Settings.GetForArtist(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		settings = model.BookingSettings{ArtistID: id, Timezone: "UTC"}
	} else if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// PutSettings handles PUT /v1/artists/:id/settings.  All fields are
// optional; absent fields keep their stored values.  Toggling
// books_open goes through the state controller: opening with no
// working hours yields 422 and the stored value stays false, so a
// client that flipped optimistically can revert.
func (h *SettingsHandler) PutSettings(c echo.Context) error {
	id, err := requireSelf(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		BooksOpen             *bool   `json:"books_open"`
		HourlyRateCents       *uint32 `json:"hourly_rate_cents"`
		DepositAmountCents    *uint32 `json:"deposit_amount_cents"`
		ConsultationFeeCents  *uint32 `json:"consultation_fee_cents"`
		MinimumSessionMinutes *uint32 `json:"minimum_session_minutes"`
		Timezone              *string `json:"timezone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	current, err := h.Settings.GetForArtist(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		current = model.BookingSettings{ArtistID: id, Timezone: "UTC"}
	} else if err != nil {
		return respondError(c, err)
	}

	if body.HourlyRateCents != nil {
		current.HourlyRateCents = *body.HourlyRateCents
	}
	if body.DepositAmountCents != nil {
		current.DepositAmountCents = *body.DepositAmountCents
	}
	if body.ConsultationFeeCents != nil {
		current.ConsultationFeeCents = *body.ConsultationFeeCents
	}
	if body.MinimumSessionMinutes != nil {
		current.MinimumSessionMinutes = *body.MinimumSessionMinutes
	}
	if body.Timezone != nil {
		if _, err := time.LoadLocation(*body.Timezone); err != nil {
			return respondError(c, repository.Invalid("timezone", "unknown IANA zone"))
		}
		current.Timezone = *body.Timezone
	}

	settings, err := h.Settings.Upsert(ctx, current)
	if err != nil {
		return respondError(c, err)
	}

	if body.BooksOpen != nil && *body.BooksOpen != settings.BooksOpen {
		if *body.BooksOpen {
			settings, err = h.State.OpenBooks(ctx, id)
		} else {
			settings, err = h.State.CloseBooks(ctx, id)
		}
		if err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(http.StatusOK, settings)
}
