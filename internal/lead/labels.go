package lead

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Label pairs a bjh_all_leads column with its Thai UI label.
type Label struct {
	Column string
	Thai   string
}

// Labels is the column/label table in table order.
var Labels = []Label{
	{"id", "id"},
	{"status", "สถานะ"},
	{"source", "แหล่งที่มา"},
	{"interested_product", "ผลิตภัณฑ์ที่สนใจ"},
	{"doctor", "หมอ"},
	{"contact_staff", "ผู้ติดต่อ"},
	{"customer_name", "ชื่อ"},
	{"phone", "เบอร์โทร"},
	{"note", "หมายเหตุ"},
	{"last_followup", "วันที่ติดตามครั้งล่าสุด"},
	{"next_followup", "วันที่ติดตามครั้งถัดไป"},
	{"consult_date", "วันที่ Consult"},
	{"surgery_date", "วันที่ผ่าตัด"},
	{"appointment_time", "เวลาที่นัด"},
	{"got_contact_date", "วันที่ได้ชื่อ เบอร์"},
	{"booked_consult_date", "วันที่ได้นัด consult"},
	{"booked_surgery_date", "วันที่ได้นัดผ่าตัด"},
	{"proposed_amount", "ยอดนำเสนอ"},
	{"customer_code", "รหัสลูกค้า"},
	{"star_flag", "ติดดาว"},
	{"country", "ประเทศ"},
	{"car_call_time", "เวลาให้เรียกรถ"},
	{"lat", "Lat"},
	{"long", "Long"},
	{"photo_note", "รูป"},
	{"gender", "เพศ"},
	{"age", "อายุ"},
	{"occupation", "อาชีพ"},
	{"from_province", "มาจากจังหวัด"},
	{"travel_method", "จะเดินทางมารพ.ยังไง"},
	{"contact_prefer_date", "วันที่สะดวกให้ติดต่อ"},
	{"contact_prefer_time", "ช่วงเวลาที่สะดวกให้ติดต่อ"},
	{"free_program", "โครงการฟรี"},
	{"event_id", "Event ID"},
	{"html_link", "htmlLink"},
	{"ical_uid", "iCalUID"},
	{"log", "Log"},
	{"doc_calendar", "Doc Calendar"},
	{"doc_event_id", "Doc Event ID"},
	{"doc_html_link", "Doc htmlLink"},
	{"doc_ical_uid", "Doc iCalUID"},
	{"line_note", "line"},
	{"line_doctor_note", "line หมอ"},
	{"ivr", "IVR"},
	{"transfer_to", "TRANSFER_TO"},
	{"status_call", "status_call"},
	{"created_at", "created_at"},
	{"updated_at", "updated_at"},
}

var (
	toThai   = map[string]string{}
	toColumn = map[string]string{}
	folded   = map[string]string{}
)

func init() {
	for _, l := range Labels {
		toThai[l.Column] = l.Thai
		toColumn[l.Thai] = l.Column
		folded[foldKey(l.Column)] = l.Column
		folded[foldKey(l.Thai)] = l.Column
	}
}

func foldKey(s string) string {
	// Casers hold state and are not shared between goroutines.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// ThaiLabel returns the UI label for column, or column itself when it has
// none.
func ThaiLabel(column string) string {
	if l, ok := toThai[column]; ok {
		return l
	}
	return column
}

// ResolveColumn maps a client key, given either as a Thai label or an
// English column name, to its column. Matching tolerates surrounding space,
// Unicode composition differences and letter case.
func ResolveColumn(key string) (string, bool) {
	if c, ok := toColumn[key]; ok {
		return c, true
	}
	if _, ok := toThai[key]; ok {
		return key, true
	}
	c, ok := folded[foldKey(key)]
	return c, ok
}
