package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Schema

func (h *Handler) GetSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetSchema())
}

func (h *Handler) GetAppointmentColumns(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetAppointmentColumns(c.Request().Context()))
}

// Response caches

func (h *Handler) GetCaches(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetCacheStats())
}

func (h *Handler) FlushCaches(c echo.Context) error {
	return c.JSON(http.StatusOK, CacheFlushResponse{
		Success: true,
		Flushed: h.svc.FlushCaches(),
	})
}
