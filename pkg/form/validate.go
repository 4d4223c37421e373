package form

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// ValidateSubmission re-checks a complete submission with DefaultClassifier.
func ValidateSubmission(ctx context.Context, variant Variant, s Submission, mode UsernameMode) error {
	return DefaultClassifier().Validate(ctx, variant, s, mode)
}

// Validate classifies every field of s in one pass, the way a controller
// would once all fields settled. Failures are returned as
// validator.ValidationErrors keyed by field name, with translation keys of
// the form "form.<field>.<status>". Sign-in forms skip the uniqueness check.
func (c Classifier) Validate(ctx context.Context, variant Variant, s Submission, mode UsernameMode) error {
	if _, ok := variants[variant]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	pwMode := PasswordSignUp
	if variant.IsSignIn() {
		pwMode = PasswordSignIn
		mode = withoutChecker(mode)
	}

	var rules []validator.Rule
	if variant.Has(FieldFullname) {
		rules = append(rules, statusRule(FieldFullname, c.Fullname(s.Fullname)))
	}
	rules = append(rules,
		statusRule(FieldUsername, c.Username(ctx, s.Username, mode)),
		statusRule(FieldPassword, c.Password(s.Password, s.PasswordAgain, pwMode)),
	)
	return validator.Apply(rules...)
}

func statusRule[S status](field Field, st S) validator.Rule {
	return validator.Rule{
		Check: st.IsValid,
		Error: validator.ValidationError{
			Field:          string(field),
			Message:        st.Message(),
			TranslationKey: "form." + string(field) + "." + st.String(),
		},
	}
}
