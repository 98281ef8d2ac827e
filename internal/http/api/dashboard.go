package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bjh.co.th/clinicops/internal/callstats"
	"bjh.co.th/clinicops/internal/lead"
	"bjh.co.th/clinicops/internal/respcache"
	"bjh.co.th/clinicops/internal/revenue"
)

// Lead sheet

// GET /api/customer-data
func (h *Handler) GetLeadSheet(c echo.Context) error {
	sheet, err := h.LeadService.Sheet(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, LeadSheetResponse{
		Success:      true,
		Data:         LeadSheetData{AllData: sheet.Rows},
		TotalRecords: sheet.TotalRecords,
	})
}

// POST /api/customer-data
func (h *Handler) ApplyLeadAction(c echo.Context) error {
	var req LeadActionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := h.LeadService.Apply(c.Request().Context(), req.Action, req.Data)
	if err != nil {
		return fail(c, err)
	}
	h.Caches.CRM.Flush()
	return c.JSON(http.StatusOK, LeadActionResponse{
		Success: true,
		Message: res.Message,
		Data:    res.Data,
	})
}

// GET /api/crm-advanced
func (h *Handler) GetLeadCalendar(c echo.Context) error {
	var f lead.CalendarFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	resp, status, err := respcache.Fetch(c.Request().Context(), h.Caches.CRM, f.CacheKey(),
		func(ctx context.Context) (*CalendarResponse, error) {
			entries, err := h.LeadService.Calendar(ctx, f)
			if err != nil {
				return nil, err
			}
			return &CalendarResponse{
				Success:   true,
				Data:      entries,
				Total:     len(entries),
				Timestamp: h.timestamp(),
				Source:    crmSource,
				Debug:     Debug{Filters: f.Echo()},
			}, nil
		})
	if err != nil {
		return failWith(c, err, map[string]any{"data": []any{}})
	}
	cacheStatus(c, status)
	return c.JSON(http.StatusOK, resp)
}

// Lookups

// Options returns the handler for GET /api/{kind}-options.
func (h *Handler) Options(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := h.LookupService.Options(c.Request().Context(), kind)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, OptionsResponse{Success: true, Data: out})
	}
}

// Revenue

// GET /api/n-clinic-db
func (h *Handler) GetSales(c echo.Context) error {
	var f revenue.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	resp, status, err := respcache.Fetch(c.Request().Context(), h.Caches.Revenue, f.CacheKey(),
		func(ctx context.Context) (*SalesResponse, error) {
			report, err := h.RevenueService.Sales(ctx, f)
			if err != nil {
				return nil, err
			}
			return &SalesResponse{
				Success:     true,
				Data:        report.Sales,
				Total:       len(report.Sales),
				TotalAmount: report.Total,
				Timestamp:   h.timestamp(),
				Source:      revenueSource,
				Debug:       Debug{Filters: f.Echo()},
			}, nil
		})
	if err != nil {
		return failWith(c, err, map[string]any{"data": []any{}})
	}
	cacheStatus(c, status)
	return c.JSON(http.StatusOK, resp)
}

// Call stats

// GET /api/phone-count
func (h *Handler) GetPhoneCount(c echo.Context) error {
	n, date, err := h.CallStatsService.PhoneCountToday(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, PhoneCountResponse{Success: true, Count: n, Date: date})
}

// GET /api/call-matrix?date=YYYY-MM-DD
func (h *Handler) GetCallMatrix(c echo.Context) error {
	m, err := h.CallStatsService.Matrix(c.Request().Context(), strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MatrixResponse{
		Success:   true,
		Date:      m.Date,
		TableData: m.TableData,
		Totals:    m.Totals,
		RawData:   m.RawData,
	})
}

// POST /api/call-matrix
func (h *Handler) LogCall(c echo.Context) error {
	var in callstats.CallLogInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.CallStatsService.LogCall(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, CallLogResponse{
		Success: true,
		Data:    out,
		Message: "Call log saved successfully",
	})
}

// Sheets

// GET /api/surgery-schedule
func (h *Handler) GetSurgerySchedule(c echo.Context) error {
	out, err := h.SheetsReader.SurgerySchedule(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SurgeryScheduleResponse{Data: out})
}

// GET /api/google-sheets-film-call-status
func (h *Handler) GetFilmCallStatus(c echo.Context) error {
	resp, status, err := respcache.Fetch(c.Request().Context(), h.Caches.CallStatus, "film-call-status",
		func(ctx context.Context) (*CallStatusResponse, error) {
			calls, err := h.SheetsReader.OutgoingCalls(ctx)
			if err != nil {
				return nil, err
			}
			return &CallStatusResponse{
				Success:   true,
				Data:      calls.Calls,
				Total:     len(calls.Calls),
				Timestamp: h.timestamp(),
				Debug:     calls.Debug,
			}, nil
		})
	if err != nil {
		return fail(c, err)
	}
	cacheStatus(c, status)
	return c.JSON(http.StatusOK, resp)
}

// GET /api/google-sheets-film-data?date=YYYY-MM-DD
func (h *Handler) GetFilmData(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = h.SheetsReader.Today()
	}

	resp, status, err := respcache.Fetch(c.Request().Context(), h.Caches.Film, "film-"+date,
		func(ctx context.Context) (*FilmDataResponse, error) {
			counts, err := h.SheetsReader.CountByAgent(ctx, date)
			if err != nil {
				return nil, err
			}
			return &FilmDataResponse{Success: true, AgentCounts: counts}, nil
		})
	if err != nil {
		return fail(c, err)
	}
	cacheStatus(c, status)
	return c.JSON(http.StatusOK, resp)
}
