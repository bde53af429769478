package services

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SanitizePhone normalizes a phone number to E.164 or empty when it cannot
// be normalized.
func SanitizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	case strings.HasPrefix(strings.TrimSpace(phone), "+") && len(digits) > 0:
		return "+" + digits
	default:
		return ""
	}
}

// SanitizeEmail returns the email when it looks valid, empty otherwise.
func SanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}
