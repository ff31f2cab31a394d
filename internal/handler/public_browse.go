package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// PublicHandler exposes the unauthenticated artist directory used by
// clients browsing for an artist. These endpoints sit behind the
// response cache since directory data changes rarely.
type PublicHandler struct {
	Artists *repository.ArtistRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(artists *repository.ArtistRepo) *PublicHandler {
	if artists == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Artists: artists}
}

// GetArtists handles GET /v1/artists with an optional ?city= filter.
func (h *PublicHandler) GetArtists(c echo.Context) error {
	artists, err := h.Artists.List(c.Request().Context(), c.QueryParam("city"))
	if err != nil {
		return respondError(c, err)
	}
	if artists == nil {
		artists = []model.Artist{}
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// GetArtist handles GET /v1/artists/:id.
func (h *PublicHandler) GetArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	artist, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, artist)
}
