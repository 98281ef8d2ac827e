package lead_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/lead"
)

func TestBuildCalendarQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   lead.CalendarFilter
		contains string
		args     []any
	}{
		{
			name:     "month and year win over dates",
			filter:   lead.CalendarFilter{Month: "11", Year: "2025", StartDate: "2025-11-01", EndDate: "2025-11-30"},
			contains: "EXTRACT(MONTH FROM consult_date::date) = $1 AND EXTRACT(YEAR FROM consult_date::date) = $2",
			args:     []any{11, 2025},
		},
		{
			name:     "single day",
			filter:   lead.CalendarFilter{StartDate: "2025-11-25", EndDate: "2025-11-25"},
			contains: "surgery_date::date = $1::date",
			args:     []any{"2025-11-25"},
		},
		{
			name:     "range",
			filter:   lead.CalendarFilter{StartDate: "2025-11-01", EndDate: "2025-11-30"},
			contains: "consult_date::date BETWEEN $1::date AND $2::date",
			args:     []any{"2025-11-01", "2025-11-30"},
		},
		{
			name:     "month without year falls back to all dated leads",
			filter:   lead.CalendarFilter{Month: "11"},
			contains: "(status = 'นัดพร้อมทำ' AND surgery_date IS NOT NULL))",
			args:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args, err := lead.BuildCalendarQuery(tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(q, `SELECT id, appointment_time, status,`) || !strings.Contains(q, `FROM "BJH-Server"."bjh_all_leads" WHERE 1=1`) {
				t.Errorf("unexpected select: %s", q)
			}
			if !strings.Contains(q, tt.contains) {
				t.Errorf("expected %q in %s", tt.contains, q)
			}
			if !strings.HasSuffix(q, "END ASC, appointment_time ASC") {
				t.Errorf("missing ordering: %s", q)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Errorf("args: got %v, want %v", args, tt.args)
			}
		})
	}
}

func TestBuildCalendarQueryRejectsBadInput(t *testing.T) {
	bad := []lead.CalendarFilter{
		{Month: "13", Year: "2025"},
		{Month: "x", Year: "2025"},
		{Month: "1", Year: "twenty"},
		{StartDate: "25/11/2025", EndDate: "25/11/2025"},
		{StartDate: "2025-11-01", EndDate: "2025-02-30"},
	}
	for _, f := range bad {
		if _, _, err := lead.BuildCalendarQuery(f); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%+v: expected validation error, got %v", f, err)
		}
	}
}

func TestCalendarFilterCacheKey(t *testing.T) {
	f := lead.CalendarFilter{Month: "11", Year: "2025"}
	if got := f.CacheKey(); got != "crm-advanced-all-all-11-2025" {
		t.Errorf("unexpected key %q", got)
	}
	if got := (lead.CalendarFilter{}).CacheKey(); got != "crm-advanced-all-all-all-all" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"", ""},
		{"2025-11-25", "2025-11-25"},
		{"2025-11-25T00:00:00.000Z", "2025-11-25"},
		{"2025-11-25 10:00:00", "2025-11-25"},
		{[]byte("2025-01-02"), "2025-01-02"},
		{time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), "2025-03-04"},
	}
	for _, tt := range tests {
		if got := lead.FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150,000", "150000"},
		{" 99.50 ", "99.5"},
		{"", "0"},
		{"ไม่ระบุ", "0"},
		{"1,234,567.25", "1234567.25"},
	}
	for _, tt := range tests {
		if got := lead.ParseAmount(tt.in).String(); got != tt.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
