package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// PasswordMode selects which password checks apply.
type PasswordMode int

const (
	// PasswordSignUp checks emptiness, strength and confirmation.
	PasswordSignUp PasswordMode = iota
	// PasswordSignIn checks emptiness only.
	PasswordSignIn
)

// Classifier maps raw field values to statuses. The zero value is not
// usable; start from DefaultClassifier.
type Classifier struct {
	MinUsernameLength int
	MinFullnameLength int
	Policy            validator.PasswordPolicy
}

// DefaultClassifier returns the classifier used when nothing is configured.
func DefaultClassifier() Classifier {
	return DefaultConfig().Classifier()
}

// ClassifyUsername classifies value with DefaultClassifier.
func ClassifyUsername(ctx context.Context, value string, mode UsernameMode) UsernameStatus {
	return DefaultClassifier().Username(ctx, value, mode)
}

// ClassifyPassword classifies a password with DefaultClassifier.
func ClassifyPassword(password, confirmation string, mode PasswordMode) PasswordStatus {
	return DefaultClassifier().Password(password, confirmation, mode)
}

// ClassifyFullname classifies a full name with DefaultClassifier.
func ClassifyFullname(value string) FullnameStatus {
	return DefaultClassifier().Fullname(value)
}

// Username runs the checks in order: empty, too short, email format (email
// mode only), uniqueness (when a checker is set). It blocks on the checker
// until it answers or ctx is done. A checker that fails leaves the username
// Valid.
func (c Classifier) Username(ctx context.Context, value string, mode UsernameMode) UsernameStatus {
	st, checker := c.precheckUsername(value, mode)
	if checker == nil {
		return st
	}
	unique, err := checker.CheckUnique(ctx, value).AwaitContext(ctx)
	if err != nil {
		return UsernameValid
	}
	return uniquenessStatus(unique)
}

// precheckUsername runs every check that needs no checker. A non-nil checker
// means the status depends on its answer.
func (c Classifier) precheckUsername(value string, mode UsernameMode) (UsernameStatus, UniquenessChecker) {
	if value == "" {
		return UsernameEmpty, nil
	}
	if validator.CharCount(value) < c.MinUsernameLength {
		return UsernameTooShort, nil
	}

	var checker UniquenessChecker
	switch m := mode.(type) {
	case nil:
	case StandardMode:
		checker = m.Unique
	case EmailMode:
		if !validator.IsEmail(value) {
			return UsernameInvalidEmailFormat, nil
		}
		checker = m.Unique
	default:
		panic(fmt.Sprintf("form: unhandled username mode %T", mode))
	}

	return UsernameValid, checker
}

func uniquenessStatus(unique bool) UsernameStatus {
	if unique {
		return UsernameValidAndUnique
	}
	return UsernameNotUnique
}

// PasswordFacts are the independently settled observations a password
// status is derived from.
type PasswordFacts struct {
	Empty    bool
	Strong   bool
	Matching bool
}

// Status applies the check order: empty, not strong enough, mismatch.
func (f PasswordFacts) Status() PasswordStatus {
	switch {
	case f.Empty:
		return PasswordEmpty
	case !f.Strong:
		return PasswordNotStrongEnough
	case !f.Matching:
		return PasswordMismatch
	}
	return PasswordValid
}

// Password classifies password against its confirmation.
func (c Classifier) Password(password, confirmation string, mode PasswordMode) PasswordStatus {
	facts := PasswordFacts{Empty: password == "", Strong: true, Matching: true}
	if mode == PasswordSignUp {
		facts.Strong = c.Policy.Satisfied(password)
		facts.Matching = password == confirmation
	}
	return facts.Status()
}

// Fullname classifies a full name. Surrounding whitespace does not count.
func (c Classifier) Fullname(value string) FullnameStatus {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return FullnameEmpty
	}
	if validator.CharCount(trimmed) < c.MinFullnameLength {
		return FullnameTooShort
	}
	return FullnameValid
}
