package user

import (
	"regexp"
)

var (
	lowerLetter = regexp.MustCompile(`[a-z]`)
	upperLetter = regexp.MustCompile(`[A-Z]`)
	digit       = regexp.MustCompile(`\d`)
	symbol      = regexp.MustCompile(`[^a-zA-Z\d]`)
)

var strengthLabels = []string{"Weak", "Fair", "Good", "Strong", "Very Strong"}

// PasswordStrength scores a password from 0 to 5, one point each for: at least
// MinPasswordLength characters, at least 10 characters, mixed case, a digit, a symbol.
func PasswordStrength(password string) int {
	score := 0
	if len(password) >= MinPasswordLength {
		score++
	}
	if len(password) >= 10 {
		score++
	}
	if lowerLetter.MatchString(password) && upperLetter.MatchString(password) {
		score++
	}
	if digit.MatchString(password) {
		score++
	}
	if symbol.MatchString(password) {
		score++
	}
	return score
}

// StrengthLabel names a PasswordStrength score for display.
func StrengthLabel(score int) string {
	i := score - 1
	if i < 0 {
		i = 0
	}
	if i >= len(strengthLabels) {
		i = len(strengthLabels) - 1
	}
	return strengthLabels[i]
}
