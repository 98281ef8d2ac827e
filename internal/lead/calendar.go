package lead

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/phone"
)

// CalendarFilter selects leads by their consult or surgery date. Empty
// fields are unset.
type CalendarFilter struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Month     string `query:"month"`
	Year      string `query:"year"`
}

// CacheKey identifies the filter in the response cache.
func (f CalendarFilter) CacheKey() string {
	return fmt.Sprintf("crm-advanced-%s-%s-%s-%s",
		orAll(f.StartDate), orAll(f.EndDate), orAll(f.Month), orAll(f.Year))
}

// Echo returns the filter as reported back to clients.
func (f CalendarFilter) Echo() map[string]string {
	return map[string]string{
		"startDate": orAll(f.StartDate),
		"endDate":   orAll(f.EndDate),
		"month":     orAll(f.Month),
		"year":      orAll(f.Year),
	}
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// BuildCalendarQuery picks exactly one date condition, in priority order:
// month and year together, a single day (start equals end), a start/end
// range, or every lead with the status-dependent date set.
func BuildCalendarQuery(f CalendarFilter) (string, []any, error) {
	var b strings.Builder
	fmt.Fprintf(&b, calendarSelectSQL, table)

	var args []any
	switch {
	case f.Month != "" && f.Year != "":
		month, err := strconv.Atoi(f.Month)
		if err != nil || month < 1 || month > 12 {
			return "", nil, apperr.Validation("invalid month %q", f.Month)
		}
		year, err := strconv.Atoi(f.Year)
		if err != nil || year < 1 {
			return "", nil, apperr.Validation("invalid year %q", f.Year)
		}
		b.WriteString(` AND ((status = 'นัด Consult' AND consult_date IS NOT NULL AND EXTRACT(MONTH FROM consult_date::date) = $1 AND EXTRACT(YEAR FROM consult_date::date) = $2)` +
			` OR (status = 'นัดพร้อมทำ' AND surgery_date IS NOT NULL AND EXTRACT(MONTH FROM surgery_date::date) = $1 AND EXTRACT(YEAR FROM surgery_date::date) = $2))`)
		args = append(args, month, year)

	case f.StartDate != "" && f.StartDate == f.EndDate:
		if err := checkDate("startDate", f.StartDate); err != nil {
			return "", nil, err
		}
		b.WriteString(` AND ((status = 'นัด Consult' AND consult_date::date = $1::date)` +
			` OR (status = 'นัดพร้อมทำ' AND surgery_date::date = $1::date))`)
		args = append(args, f.StartDate)

	case f.StartDate != "" && f.EndDate != "":
		if err := checkDate("startDate", f.StartDate); err != nil {
			return "", nil, err
		}
		if err := checkDate("endDate", f.EndDate); err != nil {
			return "", nil, err
		}
		b.WriteString(` AND ((status = 'นัด Consult' AND consult_date::date BETWEEN $1::date AND $2::date)` +
			` OR (status = 'นัดพร้อมทำ' AND surgery_date::date BETWEEN $1::date AND $2::date))`)
		args = append(args, f.StartDate, f.EndDate)

	default:
		b.WriteString(` AND ((status = 'นัด Consult' AND consult_date IS NOT NULL)` +
			` OR (status = 'นัดพร้อมทำ' AND surgery_date IS NOT NULL))`)
	}

	b.WriteString(calendarOrderSQL)
	return b.String(), args, nil
}

func checkDate(name, v string) error {
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return apperr.Validation("invalid %s %q, expected YYYY-MM-DD", name, v)
	}
	return nil
}

// CalendarEntry is a lead shaped for the calendar and table views.
type CalendarEntry struct {
	ID                any     `json:"id"`
	AppointmentTime   string  `json:"appointmentTime"`
	Status            string  `json:"status"`
	CustomerName      string  `json:"customer_name"`
	Phone             string  `json:"phone"`
	PhoneE164         string  `json:"phoneE164,omitempty"`
	InterestedProduct string  `json:"interested_product"`
	Doctor            string  `json:"doctor"`
	ContactStaff      string  `json:"contact_staff"`
	ProposedAmount    float64 `json:"proposed_amount"`
	ProposedAmountAlt float64 `json:"proposedAmount"`
	StarFlag          string  `json:"star_flag"`
	Country           string  `json:"country"`
	Note              string  `json:"note"`
	SurgeryDate       string  `json:"surgery_date"`
	ConsultDate       string  `json:"consult_date"`
	DisplayDate       string  `json:"displayDate"`
}

func toCalendarEntry(rec Record) CalendarEntry {
	amount := ParseAmount(text(rec["proposed_amount"])).InexactFloat64()
	e := CalendarEntry{
		ID:                jsonValue(rec["id"]),
		AppointmentTime:   text(rec["appointment_time"]),
		Status:            text(rec["status"]),
		CustomerName:      text(rec["customer_name"]),
		Phone:             text(rec["phone"]),
		InterestedProduct: text(rec["interested_product"]),
		Doctor:            text(rec["doctor"]),
		ContactStaff:      text(rec["contact_staff"]),
		ProposedAmount:    amount,
		ProposedAmountAlt: amount,
		StarFlag:          text(rec["star_flag"]),
		Country:           text(rec["country"]),
		Note:              text(rec["note"]),
		SurgeryDate:       FormatDate(rec["surgery_date"]),
		ConsultDate:       FormatDate(rec["consult_date"]),
	}
	if s, ok := phone.E164(e.Phone, phone.DefaultRegion); ok {
		e.PhoneE164 = s
	}

	switch {
	case e.SurgeryDate != "":
		e.DisplayDate = e.SurgeryDate
	case e.ConsultDate != "":
		e.DisplayDate = e.ConsultDate
	default:
		e.DisplayDate = e.AppointmentTime
	}
	return e
}

// FormatDate renders a date value as YYYY-MM-DD, cutting timestamps at the
// first "T" or space. Nil renders as "".
func FormatDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	s := text(v)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// ParseAmount reads a proposed amount such as "150,000" or "99.5". Blank or
// malformed input is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
