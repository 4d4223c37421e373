package form

import (
	"fmt"
	"slices"
)

// Variant names a form layout.
type Variant string

const (
	SignUpSimple   Variant = "sign_up_simple"
	SignUpFullname Variant = "sign_up_fullname"
	SignUp         Variant = "sign_up"
	SignIn         Variant = "sign_in"
)

// Field names an input of a form.
type Field string

const (
	FieldFullname      Field = "fullname"
	FieldUsername      Field = "username"
	FieldPassword      Field = "password"
	FieldPasswordAgain Field = "password_again"
)

type variantSpec struct {
	fields      []Field
	signIn      bool
	placeholder string
}

var variants = map[Variant]variantSpec{
	SignUpSimple: {
		fields:      []Field{FieldUsername, FieldPassword, FieldPasswordAgain},
		placeholder: PlaceholderUsername,
	},
	SignUpFullname: {
		fields:      []Field{FieldFullname, FieldUsername, FieldPassword, FieldPasswordAgain},
		placeholder: PlaceholderUsername,
	},
	SignUp: {
		fields:      []Field{FieldUsername, FieldPassword, FieldPasswordAgain},
		placeholder: PlaceholderUsername,
	},
	SignIn: {
		fields:      []Field{FieldUsername, FieldPassword},
		signIn:      true,
		placeholder: PlaceholderUserID,
	},
}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, ok := variants[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}

// Fields returns the inputs of the variant in display order.
func (v Variant) Fields() []Field {
	return slices.Clone(variants[v].fields)
}

// Has reports whether the variant has field f.
func (v Variant) Has(f Field) bool {
	return slices.Contains(variants[v].fields, f)
}

// IsSignIn reports whether the variant is the sign-in form.
func (v Variant) IsSignIn() bool {
	return variants[v].signIn
}

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldFullname, FieldUsername, FieldPassword, FieldPasswordAgain:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedField, s)
}

func placeholderOf(f Field) string {
	switch f {
	case FieldFullname:
		return PlaceholderFullname
	case FieldPassword:
		return PlaceholderPassword
	case FieldPasswordAgain:
		return PlaceholderPasswordAgain
	}
	return PlaceholderUsername
}
