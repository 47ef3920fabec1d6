package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)
var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// NormalizeMobileNumber validates an Indian mobile number and returns it in
// the canonical +91XXXXXXXXXX form. Accepts bare 10-digit numbers and
// numbers prefixed with +91, 91, or a leading 0.
func NormalizeMobileNumber(mobile string) (string, error) {
	m := strings.TrimSpace(mobile)
	m = strings.ReplaceAll(m, " ", "")
	m = strings.ReplaceAll(m, "-", "")

	switch {
	case strings.HasPrefix(m, "+91"):
		m = m[3:]
	case strings.HasPrefix(m, "91") && len(m) == 12:
		m = m[2:]
	case strings.HasPrefix(m, "0") && len(m) == 11:
		m = m[1:]
	}

	if !indianMobile.MatchString(m) {
		return "", fmt.Errorf("invalid Indian mobile number %q: expected 10 digits starting with 6-9", mobile)
	}
	return "+91" + m, nil
}

// CustomerIDBase derives the deterministic part of a unique customer id:
// the first three letters of the name (padded with X) plus the last four
// digits of the normalized mobile number. Collisions get a numeric suffix
// appended by the caller.
func CustomerIDBase(name, normalizedMobile string) string {
	letters := strings.ToUpper(nonLetters.ReplaceAllString(name, ""))
	if len(letters) > 3 {
		letters = letters[:3]
	}
	for len(letters) < 3 {
		letters += "X"
	}
	digits := normalizedMobile
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return letters + digits
}
