package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	callStatusSheet = "Film_dev"
	callStatusRange = callStatusSheet + "!A:Z"

	// StatusOutgoing marks a lead the call centre is currently dialling.
	StatusOutgoing = "อยู่ระหว่างโทรออก"
)

// sheetColumnName matches spreadsheet column letters (A, AS, ...). Some tabs
// carry a row of them above the real headers.
var sheetColumnName = regexp.MustCompile(`^[A-Z]{1,3}$`)

// OutgoingCall is one lead whose call status is StatusOutgoing.
type OutgoingCall struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

type CallStatusDebug struct {
	TotalRows        int    `json:"totalRows"`
	MatchedRows      int    `json:"matchedRows"`
	StatusCallColumn string `json:"statusCallColumn"`
	PhoneColumn      string `json:"phoneColumn"`
	NameColumn       string `json:"nameColumn"`
}

type OutgoingCalls struct {
	Calls []OutgoingCall
	Debug CallStatusDebug
}

func isStatusCallHeader(h string) bool {
	switch h {
	case "status_call", "statuscall", "status call", "สถานะ", "status":
		return true
	}
	return strings.Contains(h, "status") && strings.Contains(h, "call")
}

func isPhoneHeader(h string) bool {
	switch h {
	case "เบอร์โทร", "เบอร์", "phone", "tel", "telephone":
		return true
	}
	return strings.Contains(h, "เบอร์โทร") || strings.Contains(h, "phone") || strings.Contains(h, "tel")
}

func isNameHeader(h string) bool {
	switch h {
	case "ชื่อ", "name", "ชื่อลูกค้า", "customer name":
		return true
	}
	return strings.Contains(h, "ชื่อ") || strings.Contains(h, "name")
}

// findHeader returns the first column whose folded header satisfies match, or -1.
func findHeader(headers []string, match func(string) bool) int {
	for i, h := range headers {
		if match(headerKey(h)) {
			return i
		}
	}
	return -1
}

// splitHeader picks the header row. When the first row holds column letters
// the second row is the header and data starts on the third.
func splitHeader(rows [][]any) ([]string, [][]any) {
	first := headerRow(rows)
	if len(rows) > 1 {
		for _, h := range first {
			if sheetColumnName.MatchString(h) {
				return headerRow(rows[1:]), rows[2:]
			}
		}
	}
	return first, rows[1:]
}

// OutgoingCalls lists the Film_dev rows being dialled right now. Rows without
// a usable phone number are skipped; a missing name falls back to the phone.
func (r *Reader) OutgoingCalls(ctx context.Context) (*OutgoingCalls, error) {
	rows, err := r.getter.Values(ctx, r.spreadsheetID, callStatusRange)
	if err != nil {
		return nil, err
	}
	out := &OutgoingCalls{Calls: []OutgoingCall{}}
	if len(rows) == 0 {
		return out, nil
	}

	headers, data := splitHeader(rows)
	statusIdx := findHeader(headers, isStatusCallHeader)
	phoneIdx := findHeader(headers, isPhoneHeader)
	nameIdx := findHeader(headers, isNameHeader)
	if statusIdx < 0 || phoneIdx < 0 {
		r.logger.Error("call status headers not found",
			zap.Int("status_index", statusIdx),
			zap.Int("phone_index", phoneIdx),
			zap.Strings("available", headers),
		)
		return nil, &HeadersNotFoundError{
			Sheet:     callStatusSheet,
			Columns:   []string{"status_call", colPhone},
			Available: headers,
		}
	}

	out.Debug = CallStatusDebug{
		TotalRows:        len(data),
		StatusCallColumn: headers[statusIdx],
		PhoneColumn:      headers[phoneIdx],
		NameColumn:       "Not found",
	}
	if nameIdx >= 0 {
		out.Debug.NameColumn = headers[nameIdx]
	}

	for n, row := range data {
		if len(row) == 0 {
			continue
		}
		status := cell(row, statusIdx)
		phone := cell(row, phoneIdx)
		if status != StatusOutgoing || phone == "" || phone == "-" {
			continue
		}
		name := cell(row, nameIdx)
		if name == "" {
			name = phone
		}
		out.Calls = append(out.Calls, OutgoingCall{
			ID:     fmt.Sprintf("film-%d", n+2),
			Name:   name,
			Phone:  phone,
			Status: status,
		})
	}
	out.Debug.MatchedRows = len(out.Calls)

	r.logger.Info("call status read",
		zap.Int("rows", len(data)),
		zap.Int("outgoing", len(out.Calls)),
	)
	return out, nil
}
