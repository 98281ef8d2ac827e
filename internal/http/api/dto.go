package api

import (
	"github.com/shopspring/decimal"

	"bjh.co.th/clinicops/internal/appointment"
	"bjh.co.th/clinicops/internal/callstats"
	"bjh.co.th/clinicops/internal/lead"
	"bjh.co.th/clinicops/internal/lookup"
	"bjh.co.th/clinicops/internal/revenue"
	"bjh.co.th/clinicops/internal/sheets"
)

const (
	crmSource     = "PostgreSQL Database"
	revenueSource = "PostgreSQL Database (n_saleIncentive + n_staff + bjh_all_leads - sale_date <= today)"
)

// Dashboard reads

type AppointmentsResponse struct {
	Success   bool                      `json:"success"`
	Data      []appointment.Appointment `json:"data"`
	Timestamp string                    `json:"timestamp"`
}

type Debug struct {
	Filters map[string]string `json:"filters"`
}

type CalendarResponse struct {
	Success   bool                 `json:"success"`
	Data      []lead.CalendarEntry `json:"data"`
	Total     int                  `json:"total"`
	Timestamp string               `json:"timestamp"`
	Source    string               `json:"source"`
	Debug     Debug                `json:"debug"`
}

type SalesResponse struct {
	Success     bool            `json:"success"`
	Data        []revenue.Sale  `json:"data"`
	Total       int             `json:"total"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   string          `json:"timestamp"`
	Source      string          `json:"source"`
	Debug       Debug           `json:"debug"`
}

type OptionsResponse struct {
	Success bool            `json:"success"`
	Data    []lookup.Option `json:"data"`
}

type PhoneCountResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Date    string `json:"date"`
}

type MatrixResponse struct {
	Success   bool             `json:"success"`
	Date      string           `json:"date"`
	TableData []callstats.Row  `json:"tableData"`
	Totals    callstats.Row    `json:"totals"`
	RawData   []callstats.Stat `json:"rawData"`
}

type CallLogResponse struct {
	Success bool               `json:"success"`
	Data    *callstats.CallLog `json:"data"`
	Message string             `json:"message"`
}

type SurgeryScheduleResponse struct {
	Data []sheets.SurgeryEntry `json:"data"`
}

type CallStatusResponse struct {
	Success   bool                   `json:"success"`
	Data      []sheets.OutgoingCall  `json:"data"`
	Total     int                    `json:"total"`
	Timestamp string                 `json:"timestamp"`
	Debug     sheets.CallStatusDebug `json:"debug"`
}

type FilmDataResponse struct {
	Success bool `json:"success"`
	*sheets.AgentCounts
}

// Lead sheet

type LeadSheetData struct {
	AllData [][]any `json:"all_data"`
}

type LeadSheetResponse struct {
	Success      bool          `json:"success"`
	Data         LeadSheetData `json:"data"`
	TotalRecords int           `json:"totalRecords"`
}

type LeadActionRequest struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

type LeadActionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    lead.Record `json:"data,omitempty"`
}

// Appointment link

type LinkVisitRequest struct {
	VN string `json:"vn"`
}
