package validator

import "strings"

// DefaultPasswordSymbols is the symbol set a standard password must draw from.
const DefaultPasswordSymbols = "$@#!%*?&"

// PasswordPolicy describes what a strong-enough password must contain.
// It intentionally has no uppercase or digit requirement.
type PasswordPolicy struct {
	MinLength        int
	RequireLowercase bool
	Symbols          string // at least one of these is required; empty disables the check
}

// DefaultPasswordPolicy returns the sign-up policy: 8+ characters, one
// lowercase letter and one symbol from DefaultPasswordSymbols.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireLowercase: true,
		Symbols:          DefaultPasswordSymbols,
	}
}

// Satisfied reports whether value meets the policy.
func (p PasswordPolicy) Satisfied(value string) bool {
	if CharCount(value) < p.MinLength {
		return false
	}
	// a password is a single line
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	if p.RequireLowercase && !hasLowercase(value) {
		return false
	}
	if p.Symbols != "" && !strings.ContainsAny(value, p.Symbols) {
		return false
	}
	return true
}

// hasLowercase only looks at ASCII a-z.
func hasLowercase(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] >= 'a' && value[i] <= 'z' {
			return true
		}
	}
	return false
}
