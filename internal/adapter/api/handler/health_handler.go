package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	storeType string
	startedAt time.Time
}

var healthHandler *HealthHandler

func NewHealthHandler(storeType string) *HealthHandler {
	return &HealthHandler{
		storeType: storeType,
		startedAt: time.Now(),
	}
}

func SetupHealthHandler(storeType string) {
	healthHandler = NewHealthHandler(storeType)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"store":  h.storeType,
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"time":   time.Now().Format(time.RFC3339),
	})
}
