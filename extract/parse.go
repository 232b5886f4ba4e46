package extract

import (
	"strconv"
	"strings"
)

// Rating values outside this range are treated as parse failures.
const (
	minRating = 0
	maxRating = 5
)

// ParseRating parses the numeric portion preceding a '/' delimiter, e.g.
// "4.8" from "4.8 / 5". Malformed or out-of-range text reports ok=false.
func ParseRating(text string) (rating float64, ok bool) {
	head, _, _ := strings.Cut(text, "/")
	rating, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil || rating < minRating || rating > maxRating {
		return 0, false
	}
	return rating, true
}

// ParseRatingCount parses parenthesized digits, e.g. 194 from "(194)".
// Malformed text reports ok=false.
func ParseRatingCount(text string) (count int, ok bool) {
	trimmed := strings.Trim(strings.TrimSpace(text), "()")
	count, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return count, true
}
