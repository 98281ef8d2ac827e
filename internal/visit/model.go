package visit

import "time"

type Visit struct {
	RecordNo   int64      `db:"record_no" json:"record_no"`
	VN         string     `db:"vn" json:"vn"`
	CN         string     `db:"cn" json:"cn"`
	DoctorCode *string    `db:"doctor_code" json:"doctor_code"`
	RoomCode   *string    `db:"room_code" json:"room_code"`
	StartDate  *time.Time `db:"start_date" json:"start_date"`
	EndDate    *time.Time `db:"end_date" json:"end_date"`
	CC         *string    `db:"cc" json:"cc"`
	PI         *string    `db:"pi" json:"pi"`
	PE         *string    `db:"pe" json:"pe"`
	DX         *string    `db:"dx" json:"dx"`
	NoteResult *string    `db:"note_result" json:"note_result"`
	Status     *string    `db:"status" json:"status"`
}

// Input carries the client-settable fields. Nil means "not provided".
// Dates are passed through as text and cast by Postgres.
type Input struct {
	DoctorCode *string `json:"doctor_code"`
	RoomCode   *string `json:"room_code"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CC         *string `json:"cc"`
	PI         *string `json:"pi"`
	PE         *string `json:"pe"`
	DX         *string `json:"dx"`
	NoteResult *string `json:"note_result"`
	Status     *string `json:"status"`

	// AppointCode links the new visit to an appointment. It is not stored on
	// the visit row.
	AppointCode *string `json:"appoint_code,omitempty"`
}

// fields returns the provided columns and values in a fixed order.
func (in Input) fields() ([]string, []any) {
	all := []struct {
		col string
		v   *string
	}{
		{"doctor_code", in.DoctorCode},
		{"room_code", in.RoomCode},
		{"start_date", in.StartDate},
		{"end_date", in.EndDate},
		{"cc", in.CC},
		{"pi", in.PI},
		{"pe", in.PE},
		{"dx", in.DX},
		{"note_result", in.NoteResult},
		{"status", in.Status},
	}

	var (
		cols []string
		vals []any
	)
	for _, f := range all {
		if f.v == nil {
			continue
		}
		cols = append(cols, f.col)
		vals = append(vals, *f.v)
	}
	return cols, vals
}
