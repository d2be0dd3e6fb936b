package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/ports"
)

type HealthHandler struct {
	store ports.KVStore
}

func NewHealthHandler(store ports.KVStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness reports that the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness probes the storage driver. A degraded store still returns 200
// with status "degraded": the service stays interactive in memory when
// persistence is unavailable.
func (h *HealthHandler) Readiness(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "degraded", "storage": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
