package sheets

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// headerKey folds a header for comparison. Sheets typed on different devices
// mix composed and decomposed Thai vowels and Latin letter case.
func headerKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// headerRow converts the first sheet row to strings.
func headerRow(rows [][]any) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		out[i] = cellText(v)
	}
	return out
}

// indexOf returns the column whose header equals name, or -1.
func indexOf(headers []string, name string) int {
	want := headerKey(name)
	for i, h := range headers {
		if headerKey(h) == want {
			return i
		}
	}
	return -1
}

// indexContaining returns the first column whose header contains name, or -1.
func indexContaining(headers []string, name string) int {
	want := headerKey(name)
	for i, h := range headers {
		if strings.Contains(headerKey(h), want) {
			return i
		}
	}
	return -1
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// cell returns row[i] as text, or "" when the row is short or i is -1.
func cell(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return cellText(row[i])
}
