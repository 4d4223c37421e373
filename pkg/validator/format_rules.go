package validator

import "regexp"

// emailLocalChars is the atext set of RFC 5322 for unquoted local parts.
const emailLocalChars = `a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-`

var (
	// emailRegex accepts a dot-atom or quoted local part, and a domain made of
	// dotted labels or a bracketed IPv4 literal. Matching is case-insensitive
	// and anchored on both ends.
	emailRegex = regexp.MustCompile(`(?i)^(?:[` + emailLocalChars + `]+(?:\.[` + emailLocalChars + `]+)*` +
		`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")` +
		`@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?` +
		`|\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?` +
		`|[a-z0-9-]*[a-z0-9]:(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])$`)
)

// IsEmail reports whether value looks like an email address.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}
