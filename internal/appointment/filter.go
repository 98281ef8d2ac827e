package appointment

import (
	"fmt"
	"regexp"
	"strings"
)

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// startDateOperand compares bare dates against the calendar day so that a
// "to" date includes appointments later that day. Anything else is compared
// against the raw timestamp.
func startDateOperand(v string) string {
	if dateOnly.MatchString(strings.TrimSpace(v)) {
		return `DATE("start_date")`
	}
	return `"start_date"`
}

// BuildListQuery renders the listing query for cols. Each populated filter
// field adds one condition and one parameter, in the order from, to,
// doctor_code, dest_code. Rows are ordered by start_date, undated last.
func BuildListQuery(cols []string, f Filter) (string, []any) {
	var (
		conds  []string
		params []any
	)
	add := func(expr string, v string) {
		params = append(params, v)
		conds = append(conds, fmt.Sprintf("%s $%d", expr, len(params)))
	}

	if f.From != "" {
		add(startDateOperand(f.From)+" >=", f.From)
	}
	if f.To != "" {
		add(startDateOperand(f.To)+" <=", f.To)
	}
	if f.DoctorCode != "" {
		add(`"doctor_code" =`, f.DoctorCode)
	}
	if f.DestCode != "" {
		add(`"dest_code" =`, f.DestCode)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", selectList(cols), table)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(` ORDER BY "start_date" ASC NULLS LAST`)

	return b.String(), params
}
