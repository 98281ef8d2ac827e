package appointment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"bjh.co.th/clinicops/internal/sheetdate"
)

// Normalize maps a raw row to an Appointment. Missing or null columns
// become nil, record_no defaults to 0 and the two codes default to "".
func Normalize(row map[string]any) Appointment {
	return Appointment{
		RecordNo:     toInt64(row["record_no"]),
		Code:         toText(row["code"]),
		AppointCode:  toText(row["appoint_code"]),
		RegisterDate: toTime(row["register_date"]),
		StartDate:    toTime(row["start_date"]),
		EndDate:      toTime(row["end_date"]),
		Prefix:       toNullText(row["prefix"]),
		Name:         toNullText(row["name"]),
		Surname:      toNullText(row["surname"]),
		Nickname:     toNullText(row["nickname"]),
		DisplayName:  toNullText(row["display_name"]),
		Mobilephone:  toNullText(row["mobilephone"]),
		Email:        toNullText(row["email"]),
		Activity:     toNullText(row["activity"]),
		Note:         toNullText(row["note"]),
		DoctorCode:   toNullText(row["doctor_code"]),
		DoctorName:   toNullText(row["doctor_name"]),
		DestCode:     toNullText(row["dest_code"]),
		DestName:     toNullText(row["dest_name"]),
		Organize:     toNullText(row["organize"]),
		BindCode:     toNullText(row["bind_code"]),
		BindDate:     toTime(row["bind_date"]),
		VN:           toNullText(row["vn"]),
	}
}

// toInt64 accepts the shapes drivers use for bigint and numeric columns,
// including decimal strings.
func toInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return int64(x)
	case []byte:
		return parseInt(string(x))
	case string:
		return parseInt(x)
	}
	return 0
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

func toText(v any) string {
	if p := toNullText(v); p != nil {
		return *p
	}
	return ""
}

func toNullText(v any) *string {
	var s string
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		s = x
	case []byte:
		s = string(x)
	case time.Time:
		s = x.Format(time.RFC3339)
	default:
		s = fmt.Sprint(x)
	}
	return &s
}

// pgTextLayouts are the text forms Postgres uses for timestamp and
// timestamptz values.
var pgTextLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

func toTime(v any) *time.Time {
	var raw string
	switch x := v.(type) {
	case string:
		raw = x
	case []byte:
		raw = string(x)
	}
	if raw = strings.TrimSpace(raw); raw != "" {
		for _, layout := range pgTextLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return &t
			}
		}
	}

	t, ok := sheetdate.ParseCell(v).Get()
	if !ok {
		return nil
	}
	if x, isTime := v.(time.Time); isTime {
		// keep the driver's location for timestamp columns
		t = x
	}
	return &t
}
