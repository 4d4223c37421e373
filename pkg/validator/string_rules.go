package validator

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// CharCount returns the number of characters in value after NFC normalization,
// so a precomposed "é" and "e" + combining accent count the same.
func CharCount(value string) int {
	return utf8.RuneCountInString(norm.NFC.String(value))
}
