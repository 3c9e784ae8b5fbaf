package utils

import (
	"strings"

	"albahr-backend/internal/domain"
)

const omanCountryCode = "968"

// NormalizeOmanPhone converts local Omani number formats into the
// international form the messaging API expects (no plus sign):
//
//	91234567     -> 96891234567
//	0091234567   -> 96891234567 (leading zeros stripped)
//	96891234567  -> 96891234567
//
// Subscriber numbers are 8 digits starting with 9, 7 or 8. Anything that
// does not match a recognized form is rejected rather than passed through,
// so a malformed recipient never reaches the API.
func NormalizeOmanPhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")

	switch {
	case digits == "":
		return "", domain.ValidationError{Field: "phone", Msg: "no digits in phone number"}
	case len(digits) == 8 && strings.ContainsAny(digits[:1], "978"):
		return omanCountryCode + digits, nil
	case len(digits) == 11 && strings.HasPrefix(digits, omanCountryCode):
		return digits, nil
	case len(digits) == 12 && strings.HasPrefix(digits, omanCountryCode):
		return digits, nil
	}
	return "", domain.ValidationError{Field: "phone", Msg: "unrecognized Oman phone format"}
}
