package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/sheetdate"
)

// Ranges read from the "Film data" tab.
const (
	filmSheet    = "Film data"
	surgeryRange = filmSheet + "!A1:Z1000"
	filmRange    = filmSheet + "!A:Z"
)

// Headers of the "Film data" tab.
const (
	colDoctor        = "หมอ"
	colContact       = "ผู้ติดต่อ"
	colName          = "ชื่อ"
	colPhone         = "เบอร์โทร"
	colBookedConsult = "วันที่ได้นัด consult"
	colBookedSurgery = "วันที่ได้นัดผ่าตัด"
	colApptTime      = "เวลาที่นัด"
	colProposed      = "ยอดนำเสนอ"
)

var surgeryColumns = []string{colDoctor, colContact, colName, colPhone, colBookedSurgery, colApptTime, colProposed}

// Agent maps a contact-person name fragment to a call-centre agent id.
type Agent struct {
	Name string
	ID   string
}

// Agents is matched in order; the first name contained in the contact cell
// wins.
var Agents = []Agent{
	{"สา", "101"},
	{"พัชชา", "102"},
	{"ตั้งโอ๋", "103"},
	{"Test", "104"},
	{"จีน", "105"},
	{"มุก", "106"},
	{"เจ", "107"},
	{"ว่าน", "108"},
}

// MatchAgent returns the agent id for a contact-person cell.
func MatchAgent(contact string) (string, bool) {
	for _, a := range Agents {
		if strings.Contains(contact, a.Name) {
			return a.ID, true
		}
	}
	return "", false
}

type Reader struct {
	getter        ValuesGetter
	spreadsheetID string
	logger        *zap.Logger
	now           func() time.Time
}

func NewReader(getter ValuesGetter, spreadsheetID string, logger *zap.Logger) *Reader {
	return &Reader{getter: getter, spreadsheetID: spreadsheetID, logger: logger, now: time.Now}
}

// SetClock replaces the clock used to resolve "today".
func (r *Reader) SetClock(now func() time.Time) { r.now = now }

// Today is the current UTC calendar date as YYYY-MM-DD.
func (r *Reader) Today() string {
	return r.now().UTC().Format(time.DateOnly)
}

// SurgeryEntry is one booked surgery from the film sheet. It encodes with the
// sheet's Thai headers as keys.
type SurgeryEntry struct {
	Doctor          string
	ContactPerson   string
	Name            string
	Phone           string
	SurgeryDate     string
	AppointmentTime string
	ProposedAmount  string
}

func (e SurgeryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		colDoctor:        e.Doctor,
		colContact:       e.ContactPerson,
		colName:          e.Name,
		colPhone:         e.Phone,
		colBookedSurgery: e.SurgeryDate,
		colApptTime:      e.AppointmentTime,
		colProposed:      e.ProposedAmount,
	})
}

// SurgerySchedule lists rows with a booked surgery date. A sheet missing any
// required header is a validation error naming the missing headers.
func (r *Reader) SurgerySchedule(ctx context.Context) ([]SurgeryEntry, error) {
	rows, err := r.getter.Values(ctx, r.spreadsheetID, surgeryRange)
	if err != nil {
		return nil, err
	}
	out := []SurgeryEntry{}
	if len(rows) == 0 {
		return out, nil
	}

	headers := headerRow(rows)
	idx := make(map[string]int, len(surgeryColumns))
	var missing []string
	for _, c := range surgeryColumns {
		i := indexOf(headers, c)
		if i < 0 {
			missing = append(missing, c)
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("Missing required columns: %s", strings.Join(missing, ", "))
	}

	for _, row := range rows[1:] {
		date := cell(row, idx[colBookedSurgery])
		if date == "" {
			continue
		}
		out = append(out, SurgeryEntry{
			Doctor:          cell(row, idx[colDoctor]),
			ContactPerson:   cell(row, idx[colContact]),
			Name:            cell(row, idx[colName]),
			Phone:           cell(row, idx[colPhone]),
			SurgeryDate:     date,
			AppointmentTime: cell(row, idx[colApptTime]),
			ProposedAmount:  cell(row, idx[colProposed]),
		})
	}
	return out, nil
}

// HeadersNotFoundError reports a sheet lacking the columns a reader needs.
// Columns, when set, names the headers that were looked for.
type HeadersNotFoundError struct {
	Sheet     string
	Columns   []string
	Available []string
}

func (e *HeadersNotFoundError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("Required columns not found in %s sheet", e.Sheet)
	}
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = strconv.Quote(c)
	}
	return fmt.Sprintf("Required columns %s not found in %s sheet", strings.Join(quoted, " or "), e.Sheet)
}

type CountsDebug struct {
	TotalRows           int    `json:"totalRows"`
	MatchedConsultRows  int    `json:"matchedConsultRows"`
	MatchedSurgeryRows  int    `json:"matchedSurgeryRows"`
	ContactPersonColumn string `json:"contactPersonColumn"`
	ConsultDateColumn   string `json:"consultDateColumn"`
	SurgeryDateColumn   string `json:"surgeryDateColumn"`
}

// AgentCounts is the number of consults and surgeries booked for one day,
// per agent id.
type AgentCounts struct {
	Date           string         `json:"date"`
	AgentCounts    map[string]int `json:"agentCounts"`
	SurgeryCounts  map[string]int `json:"surgeryCounts"`
	TotalConsults  int            `json:"totalConsults"`
	TotalSurgeries int            `json:"totalSurgeries"`
	Debug          CountsDebug    `json:"debug"`
}

func newAgentCounts(date string) *AgentCounts {
	c := &AgentCounts{
		Date:          date,
		AgentCounts:   make(map[string]int, len(Agents)),
		SurgeryCounts: make(map[string]int, len(Agents)),
	}
	for _, a := range Agents {
		c.AgentCounts[a.ID] = 0
		c.SurgeryCounts[a.ID] = 0
	}
	return c
}

// CountByAgent counts, per agent, the rows whose consult or surgery date is
// date (today when empty). Rows with an unreadable date or no matching agent
// are skipped.
func (r *Reader) CountByAgent(ctx context.Context, date string) (*AgentCounts, error) {
	if date == "" {
		date = r.Today()
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}

	rows, err := r.getter.Values(ctx, r.spreadsheetID, filmRange)
	if err != nil {
		return nil, err
	}
	counts := newAgentCounts(date)
	if len(rows) == 0 {
		return counts, nil
	}

	headers := headerRow(rows)
	contactIdx := indexContaining(headers, colContact)
	consultIdx := indexContaining(headers, colBookedConsult)
	surgeryIdx := indexContaining(headers, colBookedSurgery)
	if contactIdx < 0 || consultIdx < 0 {
		r.logger.Error("film data headers not found",
			zap.Int("contact_index", contactIdx),
			zap.Int("consult_index", consultIdx),
			zap.Int("surgery_index", surgeryIdx),
		)
		return nil, &HeadersNotFoundError{Sheet: filmSheet, Available: headers}
	}

	data := rows[1:]
	counts.Debug = CountsDebug{
		TotalRows:           len(data),
		ContactPersonColumn: headers[contactIdx],
		ConsultDateColumn:   headers[consultIdx],
		SurgeryDateColumn:   "Not found",
	}
	if surgeryIdx >= 0 {
		counts.Debug.SurgeryDateColumn = headers[surgeryIdx]
	}

	for n, row := range data {
		contact := cell(row, contactIdx)
		if contact == "" {
			continue
		}
		agent, ok := MatchAgent(contact)
		if !ok {
			continue
		}

		if d, ok := sheetdate.Normalize(cell(row, consultIdx)); ok && d == date {
			counts.AgentCounts[agent]++
			counts.Debug.MatchedConsultRows++
			r.logger.Debug("consult matched", zap.Int("row", n+2), zap.String("agent", agent))
		}
		if d, ok := sheetdate.Normalize(cell(row, surgeryIdx)); ok && d == date {
			counts.SurgeryCounts[agent]++
			counts.Debug.MatchedSurgeryRows++
			r.logger.Debug("surgery matched", zap.Int("row", n+2), zap.String("agent", agent))
		}
	}

	counts.TotalConsults = counts.Debug.MatchedConsultRows
	counts.TotalSurgeries = counts.Debug.MatchedSurgeryRows
	r.logger.Info("film data counted",
		zap.String("date", date),
		zap.Int("rows", len(data)),
		zap.Int("consults", counts.TotalConsults),
		zap.Int("surgeries", counts.TotalSurgeries),
	)
	return counts, nil
}

