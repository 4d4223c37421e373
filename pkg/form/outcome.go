package form

import (
	"fmt"

	"github.com/samber/lo"
)

type signInCode uint8

const (
	signInUnable signInCode = iota
	signInUsernameNotFound
	signInWrongPassword
	signInSuccess
)

// SignInOutcome is the result of a sign-in callback. Only the package-level
// values exist; the zero value means the attempt could not be completed.
type SignInOutcome struct {
	code signInCode
}

var (
	SignInSuccess          = SignInOutcome{signInSuccess}
	SignInUsernameNotFound = SignInOutcome{signInUsernameNotFound}
	SignInWrongPassword    = SignInOutcome{signInWrongPassword}
	SignInUnable           = SignInOutcome{signInUnable}
)

func (o SignInOutcome) String() string {
	switch o.code {
	case signInSuccess:
		return "success"
	case signInUsernameNotFound:
		return "username_not_found"
	case signInWrongPassword:
		return "wrong_password"
	case signInUnable:
		return "unable_to_sign_in"
	}
	return "unknown"
}

// ParseSignInOutcome is the inverse of SignInOutcome.String.
func ParseSignInOutcome(s string) (SignInOutcome, error) {
	for _, o := range []SignInOutcome{SignInSuccess, SignInUsernameNotFound, SignInWrongPassword, SignInUnable} {
		if o.String() == s {
			return o, nil
		}
	}
	return SignInUnable, fmt.Errorf("%w: sign-in outcome %q", ErrUnknownOutcome, s)
}

type resetCode uint8

const (
	resetUnable resetCode = iota
	resetUsernameNotFound
	resetSuccess
)

// ResetOutcome is the result of a reset-password callback. The zero value
// means the reset email could not be sent.
type ResetOutcome struct {
	code resetCode
}

var (
	ResetSuccess          = ResetOutcome{resetSuccess}
	ResetUsernameNotFound = ResetOutcome{resetUsernameNotFound}
	ResetUnable           = ResetOutcome{resetUnable}
)

func (o ResetOutcome) String() string {
	switch o.code {
	case resetSuccess:
		return "success"
	case resetUsernameNotFound:
		return "username_not_found"
	case resetUnable:
		return "unable_to_reset"
	}
	return "unknown"
}

// ParseResetOutcome is the inverse of ResetOutcome.String.
func ParseResetOutcome(s string) (ResetOutcome, error) {
	for _, o := range []ResetOutcome{ResetSuccess, ResetUsernameNotFound, ResetUnable} {
		if o.String() == s {
			return o, nil
		}
	}
	return ResetUnable, fmt.Errorf("%w: reset outcome %q", ErrUnknownOutcome, s)
}

// overrides maps an outcome to the inline texts it writes.
func (o SignInOutcome) overrides() ErrorOverride {
	switch o.code {
	case signInSuccess:
		return ErrorOverride{}
	case signInUsernameNotFound:
		return ErrorOverride{Username: lo.ToPtr(MsgUsernameDoesNotExist)}
	case signInWrongPassword:
		return ErrorOverride{Password: lo.ToPtr(MsgWrongPassword)}
	case signInUnable:
		return ErrorOverride{Username: lo.ToPtr(MsgUnableToSignIn), Password: lo.ToPtr(MsgUnableToSignIn)}
	}
	panic(fmt.Sprintf("form: unhandled sign-in outcome %d", o.code))
}

func (o ResetOutcome) overrides() ErrorOverride {
	switch o.code {
	case resetSuccess:
		return ErrorOverride{Password: lo.ToPtr(MsgResetEmailSent)}
	case resetUsernameNotFound:
		return ErrorOverride{Username: lo.ToPtr(MsgUsernameDoesNotExist)}
	case resetUnable:
		return ErrorOverride{Username: lo.ToPtr(MsgUnableToSendResetEmail), Password: lo.ToPtr(MsgUnableToSendResetEmail)}
	}
	panic(fmt.Sprintf("form: unhandled reset outcome %d", o.code))
}
