package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/service"
)

// InviteHandler exposes direct booking invitations: the artist-facing
// send/list endpoints and the public guest redemption endpoint.
type InviteHandler struct {
	Coordinator *service.InviteCoordinator
}

// NewInviteHandler constructs an InviteHandler.
func NewInviteHandler(coordinator *service.InviteCoordinator) *InviteHandler {
	if coordinator == nil {
		panic("nil coordinator passed to NewInviteHandler")
	}
	return &InviteHandler{Coordinator: coordinator}
}

// SendInvite handles POST /v1/appointments/invite.  The artist is
// taken from the access token; a body artist_id, when present, must
// match it.  The redemption token appears in this response exactly
// once and is never retrievable again.
func (h *InviteHandler) SendInvite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req service.InviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ArtistID != 0 && req.ArtistID != uid {
		return respondError(c, repository.ErrForbidden)
	}
	req.ArtistID = uid

	inv, rawToken, err := h.Coordinator.SendInvite(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"invite":       inviteJSON(inv),
		"redeem_token": rawToken,
	})
}

// ListInvites handles GET /v1/artists/:id/invites.
func (h *InviteHandler) ListInvites(c echo.Context) error {
	id, err := requireSelf(c)
	if err != nil {
		return respondError(c, err)
	}
	invites, err := h.Coordinator.ListForArtist(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]echo.Map, 0, len(invites))
	for _, inv := range invites {
		out = append(out, inviteJSON(inv))
	}
	return c.JSON(http.StatusOK, echo.Map{"invites": out})
}

// RedeemInvite handles POST /v1/invites/:id/redeem.  Guests hit this
// without authentication; the single-use token is their credential.
func (h *InviteHandler) RedeemInvite(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil || body.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}
	appt, err := h.Coordinator.Redeem(c.Request().Context(), id, body.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"appointment": appt})
}

// inviteJSON renders an invite with its date as YYYY-MM-DD.
func inviteJSON(inv model.Invite) echo.Map {
	m := echo.Map{
		"id":           inv.ID,
		"artist_id":    inv.ArtistID,
		"date":         inv.DateString(),
		"booking_type": inv.BookingType,
		"guest_email":  inv.GuestEmail,
		"status":       inv.Status,
		"created_at":   inv.CreatedAt,
	}
	if inv.GuestName != "" {
		m["guest_name"] = inv.GuestName
	}
	if inv.Note != "" {
		m["note"] = inv.Note
	}
	if inv.RedeemedAt != nil {
		m["redeemed_at"] = inv.RedeemedAt
	}
	return m
}
