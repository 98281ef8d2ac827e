package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bjh.co.th/clinicops/internal/appointment"
	"bjh.co.th/clinicops/internal/callstats"
	"bjh.co.th/clinicops/internal/lead"
	"bjh.co.th/clinicops/internal/lookup"
	"bjh.co.th/clinicops/internal/respcache"
	"bjh.co.th/clinicops/internal/revenue"
	"bjh.co.th/clinicops/internal/sheets"
	"bjh.co.th/clinicops/internal/visit"
)

// Caches are the response caches for the slow read routes.
type Caches struct {
	CRM        *respcache.Cache
	Revenue    *respcache.Cache
	Film       *respcache.Cache
	CallStatus *respcache.Cache
}

type Handler struct {
	AppointmentService *appointment.Service
	VisitService       *visit.Service
	LeadService        *lead.Service
	LookupService      *lookup.Service
	RevenueService     *revenue.Service
	CallStatsService   *callstats.Service
	SheetsReader       *sheets.Reader
	Caches             Caches

	now func() time.Time
}

func NewHandler(
	a *appointment.Service,
	v *visit.Service,
	l *lead.Service,
	lk *lookup.Service,
	r *revenue.Service,
	cs *callstats.Service,
	sr *sheets.Reader,
	caches Caches,
) *Handler {
	return &Handler{
		AppointmentService: a,
		VisitService:       v,
		LeadService:        l,
		LookupService:      lk,
		RevenueService:     r,
		CallStatsService:   cs,
		SheetsReader:       sr,
		Caches:             caches,
		now:                time.Now,
	}
}

// SetClock replaces time.Now for response timestamps.
func (h *Handler) SetClock(now func() time.Time) { h.now = now }

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

// bindBody decodes only the request body. Payload maps must not pick up
// path parameters.
func bindBody(c echo.Context, v any) error {
	return (&echo.DefaultBinder{}).BindBody(c, v)
}

// Appointments

// GET /api/appointments
func (h *Handler) ListAppointments(c echo.Context) error {
	var f appointment.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	out, err := h.AppointmentService.List(c.Request().Context(), f)
	if err != nil {
		return failWith(c, err, map[string]any{"data": []any{}})
	}
	return c.JSON(http.StatusOK, AppointmentsResponse{
		Success:   true,
		Data:      out,
		Timestamp: h.timestamp(),
	})
}

// GET /api/customers/:cn/appointments
func (h *Handler) ListCustomerAppointments(c echo.Context) error {
	out, err := h.AppointmentService.ListByCN(c.Request().Context(), c.Param("cn"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /api/customers/:cn/appointments
func (h *Handler) CreateAppointment(c echo.Context) error {
	var p appointment.Payload
	if err := bindBody(c, &p); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.AppointmentService.CreateForCustomer(c.Request().Context(), c.Param("cn"), p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /api/appointments/:code
func (h *Handler) GetAppointment(c echo.Context) error {
	out, err := h.AppointmentService.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /api/appointments/:code
func (h *Handler) UpdateAppointment(c echo.Context) error {
	var p appointment.Payload
	if err := bindBody(c, &p); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.AppointmentService.UpdateByCode(c.Request().Context(), c.Param("code"), p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /api/appointments/:code/visit
func (h *Handler) LinkAppointmentVisit(c echo.Context) error {
	var req LinkVisitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.VN == "" {
		return badRequest(c, "vn is required")
	}

	ctx := c.Request().Context()
	code := c.Param("code")
	if err := h.AppointmentService.LinkVisit(ctx, code, req.VN); err != nil {
		return fail(c, err)
	}
	out, err := h.AppointmentService.GetByCode(ctx, code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /api/appointments/:code
func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.AppointmentService.DeleteByCode(c.Request().Context(), c.Param("code")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Visits

// GET /api/customers/:cn/visits
func (h *Handler) ListCustomerVisits(c echo.Context) error {
	out, err := h.VisitService.ListByCN(c.Request().Context(), c.Param("cn"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /api/customers/:cn/visits
func (h *Handler) CreateVisit(c echo.Context) error {
	var in visit.Input
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.VisitService.Create(c.Request().Context(), c.Param("cn"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /api/visits/:vn
func (h *Handler) GetVisit(c echo.Context) error {
	out, err := h.VisitService.Get(c.Request().Context(), c.Param("vn"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /api/visits/:vn
func (h *Handler) UpdateVisit(c echo.Context) error {
	var in visit.Input
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.VisitService.Update(c.Request().Context(), c.Param("vn"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /api/visits/:vn
func (h *Handler) DeleteVisit(c echo.Context) error {
	if err := h.VisitService.Delete(c.Request().Context(), c.Param("vn")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
