// Package validator provides the stateless predicates and rule types used to
// classify sign-up and sign-in field values.
//
// Predicates (IsEmail, CharCount, PasswordPolicy.Satisfied) are plain
// functions for hot paths such as per-keystroke classification. A Rule pairs
// a check with translation-friendly error metadata; Apply evaluates a set of
// rules and collects every failure as ValidationErrors.
//
// # Architecture
//
// Each source file groups a family of helpers (`string_rules.go`,
// `format_rules.go`, `password_rules.go`). Patterns are compiled once at
// package initialization; there is no mutable package state, so every helper
// is goroutine-safe.
//
// Core building blocks:
//   - Rule              – lightweight struct containing Check func and error meta
//   - ValidationError   – describes a single failure and supports i18n keys
//   - ValidationErrors  – slice type that implements the error interface
//   - PasswordPolicy    – length, lowercase and symbol requirements
//
// # Usage
//
//	err := validator.Apply(validator.Rule{
//	    Check: func() bool { return validator.IsEmail(username) },
//	    Error: validator.ValidationError{
//	        Field:          "username",
//	        Message:        "Username is not a valid email address",
//	        TranslationKey: "form.username.invalid_email_format",
//	    },
//	})
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msg := verrs.First("username")
//	    _ = msg
//	}
//
// # Character counting
//
// Lengths are counted in characters after NFC normalization
// (golang.org/x/text/unicode/norm), not bytes.
package validator
