package appointment_test

import (
	"reflect"
	"testing"
	"time"

	"bjh.co.th/clinicops/internal/appointment"
)

func TestNormalizeEmptyRow(t *testing.T) {
	got := appointment.Normalize(map[string]any{})

	if got.RecordNo != 0 || got.Code != "" || got.AppointCode != "" {
		t.Errorf("expected zero identifier and empty codes, got %+v", got)
	}

	// every pointer field must be present and nil
	v := reflect.ValueOf(got)
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Ptr && !f.IsNil() {
			t.Errorf("field %s: expected nil, got %v", v.Type().Field(i).Name, f.Elem())
		}
	}
}

func TestNormalizeCoercesDriverValues(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

	got := appointment.Normalize(map[string]any{
		"record_no":     "9007199254740993",
		"code":          []byte("CN001"),
		"appoint_code":  "AP-1",
		"start_date":    start,
		"register_date": "2025-01-01 08:00:00",
		"end_date":      "not a date",
		"name":          []byte("สมชาย"),
		"doctor_code":   "D1",
		"vn":            nil,
	})

	if got.RecordNo != 9007199254740993 {
		t.Errorf("record_no: got %d", got.RecordNo)
	}
	if got.Code != "CN001" || got.AppointCode != "AP-1" {
		t.Errorf("codes: got %q %q", got.Code, got.AppointCode)
	}
	if got.StartDate == nil || !got.StartDate.Equal(start) {
		t.Errorf("start_date: got %v", got.StartDate)
	}
	if got.RegisterDate == nil || got.RegisterDate.Hour() != 8 {
		t.Errorf("register_date: got %v", got.RegisterDate)
	}
	if got.EndDate != nil {
		t.Errorf("unparseable end_date should be nil, got %v", got.EndDate)
	}
	if got.Name == nil || *got.Name != "สมชาย" {
		t.Errorf("name: got %v", got.Name)
	}
	if got.DoctorCode == nil || *got.DoctorCode != "D1" {
		t.Errorf("doctor_code: got %v", got.DoctorCode)
	}
	if got.VN != nil {
		t.Errorf("vn: expected nil, got %v", *got.VN)
	}
	if got.Surname != nil {
		t.Errorf("missing surname should be nil")
	}
}

func TestNormalizeKeepsPostgresTextTimestamps(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"timestamptz short offset", "2025-01-01 10:00:00+07", time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)},
		{"timestamptz fractional", "2025-01-01 10:00:00.123456+07", time.Date(2025, 1, 1, 3, 0, 0, 123456000, time.UTC)},
		{"timestamptz full offset", []byte("2025-01-01 10:00:00+05:30"), time.Date(2025, 1, 1, 4, 30, 0, 0, time.UTC)},
		{"timestamp fractional", "2025-01-01 10:00:00.5", time.Date(2025, 1, 1, 10, 0, 0, 500000000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appointment.Normalize(map[string]any{"start_date": tt.in})
			if got.StartDate == nil {
				t.Fatal("start_date present in row but normalised to nil")
			}
			if !got.StartDate.Equal(tt.want) {
				t.Errorf("start_date: got %v, want %v", got.StartDate, tt.want)
			}
		})
	}
}

func TestNormalizeRecordNoShapes(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{int64(7), 7},
		{7, 7},
		{int32(7), 7},
		{float64(7), 7},
		{"42", 42},
		{[]byte("43"), 43},
		{"12.0", 12},
		{"abc", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		got := appointment.Normalize(map[string]any{"record_no": tt.in})
		if got.RecordNo != tt.want {
			t.Errorf("record_no %#v: got %d, want %d", tt.in, got.RecordNo, tt.want)
		}
	}
}
