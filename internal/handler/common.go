package handler // handler defines the HTTP layer over services and repositories

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/repository"
)

// getUserID extracts the authenticated user's ID from the echo context
// where the JWT middleware stored it, tolerating the claim types the
// JSON decoder may produce.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, repository.Invalid("id", "must be a positive integer")
	}
	return id, nil
}

// requireSelf ensures the authenticated artist owns the resource
// addressed by the path. The returned ID is the verified artist ID.
func requireSelf(c echo.Context) (uint64, error) {
	id, err := pathID(c)
	if err != nil {
		return 0, err
	}
	uid, err := getUserID(c)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if uid != id {
		return 0, repository.ErrForbidden
	}
	return id, nil
}

// respondError maps the service/repository error taxonomy onto HTTP
// status codes. Unrecognized errors become opaque 500s so internals
// never leak to clients.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRequiresAvailability):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "set working hours before opening books",
			"code":  "requires_availability",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrTransientFetch):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream temporarily unavailable"})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		return nil
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
