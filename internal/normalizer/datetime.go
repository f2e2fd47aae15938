package normalizer

import (
	"strings"

	"github.com/momopress-backend/internal/domain/transaction"
)

// splitDateTime splits "YYYY-MM-DD HH:MM AM" at the first space.
// The remainder is trimmed but otherwise kept as written.
func splitDateTime(dateTime string) (date, clock string) {
	date, rest, _ := strings.Cut(dateTime, " ")
	return date, strings.TrimSpace(rest)
}

// inPeriod reports whether the date part of dateTime falls in period.
// Year and month are read leniently so "2025-7-1" and "02025-07x" still match,
// while anything without leading digits is treated as unparseable.
func inPeriod(dateTime string, period transaction.Period) bool {
	date, _ := splitDateTime(dateTime)
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return false
	}

	year, ok := leadingInt(parts[0])
	if !ok {
		return false
	}
	month, ok := leadingInt(parts[1])
	if !ok {
		return false
	}
	return year == period.Year && month == period.Month
}

// leadingInt parses an optionally signed run of decimal digits at the start of s,
// after leading whitespace, ignoring whatever follows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
