package form

import "errors"

var (
	ErrUnknownVariant     = errors.New("form: unknown form variant")
	ErrUnknownMode        = errors.New("form: unknown username mode")
	ErrUnknownOutcome     = errors.New("form: unknown outcome")
	ErrAlreadyInitialized = errors.New("form: already initialized")
	ErrUnsupportedField   = errors.New("form: field not part of this form")
	ErrNotSignInForm      = errors.New("form: operation requires a sign-in form")
	ErrNotSignUpForm      = errors.New("form: operation requires a sign-up form")
	ErrNoSubmitHandler    = errors.New("form: no submit handler configured")
	ErrNoSignInHandler    = errors.New("form: no sign-in handler configured")
	ErrNoResetHandler     = errors.New("form: no reset-password handler configured")
	ErrResetNotRequested  = errors.New("form: password reset not requested")
	ErrClosed             = errors.New("form: controller is closed")
)
