package utils

import (
	"regexp"
	"strings"
)

// Indonesian license plate format: B 1234 XYZ
var (
	platePattern       = regexp.MustCompile(`^[A-Z]{1,2} \d{1,4} [A-Z]{1,3}$`)
	letterDigitBreak   = regexp.MustCompile(`([A-Z])(\d)`)
	digitLetterBreak   = regexp.MustCompile(`(\d)([A-Z])`)
	repeatedWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizePlate uppercases the plate and restores the canonical single spaces
// between the region letters, the digits and the suffix letters.
func NormalizePlate(plate string) string {
	normalized := strings.ToUpper(strings.TrimSpace(plate))
	normalized = repeatedWhitespace.ReplaceAllString(normalized, " ")
	normalized = letterDigitBreak.ReplaceAllString(normalized, "$1 $2")
	normalized = digitLetterBreak.ReplaceAllString(normalized, "$1 $2")
	return normalized
}

// ValidPlate reports whether the (already normalized) plate matches the
// 1-2 letters, 1-4 digits, 1-3 letters pattern.
func ValidPlate(plate string) bool {
	return platePattern.MatchString(plate)
}
