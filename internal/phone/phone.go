// Package phone normalises customer phone numbers to E.164.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "TH"

// E164 formats raw as +<country><number>. It reports false when raw is blank
// or not a valid number for region.
func E164(raw, region string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// Normalize returns the E.164 form of raw, or raw trimmed when it does not
// parse.
func Normalize(raw string) string {
	if s, ok := E164(raw, DefaultRegion); ok {
		return s
	}
	return strings.TrimSpace(raw)
}
