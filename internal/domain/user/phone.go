package user

import (
	"regexp"
	"strings"
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
	mtnRwandaPhone  = regexp.MustCompile(`^(\+?250|0)?(78|79)\d{7}$`)
)

// ValidatePhone accepts MTN Rwanda numbers (078/079) in local, 250 or +250 form.
// Spaces, dashes and parentheses are ignored.
func ValidatePhone(phone string) bool {
	return mtnRwandaPhone.MatchString(cleanPhone(phone))
}

// NormalizePhone rewrites a phone number to +250 form.
// It does not validate; call ValidatePhone first.
func NormalizePhone(phone string) string {
	p := cleanPhone(phone)
	switch {
	case strings.HasPrefix(p, "+250"):
		return p
	case strings.HasPrefix(p, "250"):
		return "+" + p
	case strings.HasPrefix(p, "0"):
		return "+250" + p[1:]
	default:
		return "+250" + p
	}
}

func cleanPhone(phone string) string {
	return phoneSeparators.ReplaceAllString(phone, "")
}
