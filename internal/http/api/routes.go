package api

import (
	"github.com/labstack/echo/v4"

	"bjh.co.th/clinicops/internal/lookup"
)

// RegisterRoutes wires all dashboard and record endpoints under the given Echo group.
func RegisterRoutes(g *echo.Group, h *Handler) {

	// Appointments
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:code", h.GetAppointment)
	g.PUT("/appointments/:code", h.UpdateAppointment)
	g.DELETE("/appointments/:code", h.DeleteAppointment)
	g.PUT("/appointments/:code/visit", h.LinkAppointmentVisit)
	g.GET("/customers/:cn/appointments", h.ListCustomerAppointments)
	g.POST("/customers/:cn/appointments", h.CreateAppointment)

	// Visits
	g.GET("/customers/:cn/visits", h.ListCustomerVisits)
	g.POST("/customers/:cn/visits", h.CreateVisit)
	g.GET("/visits/:vn", h.GetVisit)
	g.PUT("/visits/:vn", h.UpdateVisit)
	g.DELETE("/visits/:vn", h.DeleteVisit)

	// Leads
	g.GET("/customer-data", h.GetLeadSheet)
	g.POST("/customer-data", h.ApplyLeadAction)
	g.GET("/crm-advanced", h.GetLeadCalendar)

	// Option lists
	for _, kind := range lookup.Kinds {
		g.GET("/"+kind+"-options", h.Options(kind))
	}

	// Revenue
	g.GET("/n-clinic-db", h.GetSales)

	// Contact centre
	g.GET("/phone-count", h.GetPhoneCount)
	g.GET("/call-matrix", h.GetCallMatrix)
	g.POST("/call-matrix", h.LogCall)

	// Google Sheets
	g.GET("/surgery-schedule", h.GetSurgerySchedule)
	g.GET("/google-sheets-film-data", h.GetFilmData)
	g.GET("/google-sheets-film-call-status", h.GetFilmCallStatus)
}
