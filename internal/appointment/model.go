package appointment

import "time"

// Appointment is one row of b_appointment in fixed shape: every field is
// present, optional ones as null.
type Appointment struct {
	RecordNo     int64      `json:"record_no"`
	Code         string     `json:"code"`
	AppointCode  string     `json:"appoint_code"`
	RegisterDate *time.Time `json:"register_date"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Prefix       *string    `json:"prefix"`
	Name         *string    `json:"name"`
	Surname      *string    `json:"surname"`
	Nickname     *string    `json:"nickname"`
	DisplayName  *string    `json:"display_name"`
	Mobilephone  *string    `json:"mobilephone"`
	Email        *string    `json:"email"`
	Activity     *string    `json:"activity"`
	Note         *string    `json:"note"`
	DoctorCode   *string    `json:"doctor_code"`
	DoctorName   *string    `json:"doctor_name"`
	DestCode     *string    `json:"dest_code"`
	DestName     *string    `json:"dest_name"`
	Organize     *string    `json:"organize"`
	BindCode     *string    `json:"bind_code"`
	BindDate     *time.Time `json:"bind_date"`
	VN           *string    `json:"vn"`
}

// Filter narrows List. Empty fields are ignored.
type Filter struct {
	From       string `query:"from"`
	To         string `query:"to"`
	DoctorCode string `query:"doctor_code"`
	DestCode   string `query:"dest_code"`
}

// Payload carries column values for create and update, keyed by column name.
// Null values and unknown columns are dropped before any SQL is built.
type Payload map[string]any
