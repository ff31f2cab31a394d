// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/handler"
)

// RegisterRoutes registers routes that carry no authentication and no
// caching. Currently that is only the health check used by load
// balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
