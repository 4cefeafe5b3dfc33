// handlers_health.go - Service health handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// serviceName identifies this service in health responses.
const serviceName = "connectivity-bridge"

// HealthHandlerImpl reports liveness and build identity for the conversion
// service.
type HealthHandlerImpl struct {
	version string
}

// NewHealthHandler creates a health handler reporting the given build version
func NewHealthHandler(version string) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
	}
}

// HandleHealth returns the service identity and build version
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": serviceName,
		"version": h.version,
	})
}
