package util

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most max runes, ending it with "..." when cut
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// FormatRating formats an average rating for display
func FormatRating(avg float64) string {
	if avg <= 0 {
		return "not rated"
	}
	return fmt.Sprintf("%.1f/5", avg)
}

// Plural returns "1 recipe" or "3 recipes"
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// IsNumeric checks if a string is a non-empty run of ASCII digits
func IsNumeric(str string) bool {
	if str == "" {
		return false
	}
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
