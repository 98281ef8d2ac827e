package admin

import "github.com/labstack/echo/v4"

func RegisterRoutes(g *echo.Group, h *Handler) {

	// Schema
	g.GET("/schema", h.GetSchema)
	g.GET("/appointment-columns", h.GetAppointmentColumns)

	// Response caches
	g.GET("/cache", h.GetCaches)
	g.DELETE("/cache", h.FlushCaches)
}
