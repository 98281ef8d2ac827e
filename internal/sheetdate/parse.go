// Package sheetdate parses the loosely formatted dates found in spreadsheet
// cells and form input. Parsing never fails loudly: anything that cannot be
// read yields Unparseable, and callers decide whether to skip the record.
//
// Day-first input is read as-is. Buddhist-era years (e.g. 2568) are not
// converted; display code adds 543 on the way out, parsing never subtracts it.
package sheetdate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is either a parsed calendar date or Unparseable.
type Result struct {
	t  time.Time
	ok bool
}

// Unparseable is the zero Result.
var Unparseable = Result{}

// Parsed wraps t as a successful Result, normalised to UTC.
func Parsed(t time.Time) Result {
	return Result{t: t.UTC(), ok: true}
}

// Get returns the parsed time and whether parsing succeeded.
func (r Result) Get() (time.Time, bool) {
	return r.t, r.ok
}

func (r Result) OK() bool { return r.ok }

// Key returns the YYYY-MM-DD form used for date bucketing, or "" when
// unparseable.
func (r Result) Key() string {
	if !r.ok {
		return ""
	}
	return r.t.Format(time.DateOnly)
}

func (r Result) String() string {
	if !r.ok {
		return "unparseable"
	}
	return r.Key()
}

var (
	isoDate    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dayFirst   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dayFirstNS = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	yearFirst  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// freeText are the layouts tried after the structured forms.
var freeText = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"Mon Jan 2 2006",
	"Mon, 2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
}

// Parse interprets s as, in order: an ISO calendar date, a day-first
// D/M/YYYY date validated by round-tripping its components, or one of a fixed
// set of free-text layouts.
func Parse(s string) Result {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unparseable
	}

	if isoDate.MatchString(s) {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return Unparseable
		}
		return Parsed(t)
	}

	if m := dayFirst.FindStringSubmatch(s); m != nil {
		return fromParts(m[3], m[2], m[1])
	}

	for _, layout := range freeText {
		if t, err := time.Parse(layout, s); err == nil {
			return Parsed(t)
		}
	}
	return Unparseable
}

// ParseCell accepts a raw spreadsheet or driver value.
func ParseCell(v any) Result {
	switch x := v.(type) {
	case nil:
		return Unparseable
	case string:
		return Parse(x)
	case []byte:
		return Parse(string(x))
	case time.Time:
		if x.IsZero() {
			return Unparseable
		}
		return Parsed(x)
	case *time.Time:
		if x == nil {
			return Unparseable
		}
		return ParseCell(*x)
	case *string:
		if x == nil {
			return Unparseable
		}
		return Parse(*x)
	case fmt.Stringer:
		return Parse(x.String())
	}
	return Unparseable
}

// Normalize returns the YYYY-MM-DD key for s. Beyond Parse it also accepts
// dashes in day-first dates (D-M-YYYY) and unpadded year-first dates
// (YYYY-M-D).
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	var r Result
	switch {
	case dayFirstNS.MatchString(s):
		m := dayFirstNS.FindStringSubmatch(s)
		r = fromParts(m[3], m[2], m[1])
	case yearFirst.MatchString(s):
		m := yearFirst.FindStringSubmatch(s)
		r = fromParts(m[1], m[2], m[3])
	default:
		r = Parse(s)
	}
	return r.Key(), r.OK()
}

// fromParts builds a UTC date and rejects components that overflow, such as
// 31/02 or month 13.
func fromParts(year, month, day string) Result {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return Unparseable
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Unparseable
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Unparseable
	}
	return Parsed(t)
}
