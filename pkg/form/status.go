package form

// UsernameStatus is the classification of a settled username.
type UsernameStatus int

const (
	UsernameEmpty UsernameStatus = iota
	UsernameTooShort
	UsernameInvalidEmailFormat
	UsernameNotUnique
	UsernameValidAndUnique
	UsernameValid
)

func (s UsernameStatus) String() string {
	switch s {
	case UsernameEmpty:
		return "empty"
	case UsernameTooShort:
		return "too_short"
	case UsernameInvalidEmailFormat:
		return "invalid_email_format"
	case UsernameNotUnique:
		return "not_unique"
	case UsernameValidAndUnique:
		return "valid_and_unique"
	case UsernameValid:
		return "valid"
	}
	return "unknown"
}

// IsValid reports whether the username may be submitted.
func (s UsernameStatus) IsValid() bool {
	return s == UsernameValid || s == UsernameValidAndUnique
}

// Message returns the inline text for the status. ValidAndUnique carries a
// positive confirmation; Valid has no text.
func (s UsernameStatus) Message() string {
	switch s {
	case UsernameEmpty:
		return MsgUsernameEmpty
	case UsernameTooShort:
		return MsgUsernameTooShort
	case UsernameInvalidEmailFormat:
		return MsgUsernameInvalidEmail
	case UsernameNotUnique:
		return MsgUsernameNotAvailable
	case UsernameValidAndUnique:
		return MsgUsernameAvailable
	}
	return ""
}

// PasswordStatus is the classification of a settled password.
type PasswordStatus int

const (
	PasswordEmpty PasswordStatus = iota
	PasswordNotStrongEnough
	PasswordMismatch
	PasswordValid
)

func (s PasswordStatus) String() string {
	switch s {
	case PasswordEmpty:
		return "empty"
	case PasswordNotStrongEnough:
		return "not_strong_enough"
	case PasswordMismatch:
		return "mismatch"
	case PasswordValid:
		return "valid"
	}
	return "unknown"
}

func (s PasswordStatus) IsValid() bool {
	return s == PasswordValid
}

func (s PasswordStatus) Message() string {
	switch s {
	case PasswordEmpty:
		return MsgPasswordEmpty
	case PasswordNotStrongEnough:
		return MsgPasswordTooWeak
	case PasswordMismatch:
		return MsgPasswordMismatch
	}
	return ""
}

// FullnameStatus is the classification of a settled full name.
type FullnameStatus int

const (
	FullnameEmpty FullnameStatus = iota
	FullnameTooShort
	FullnameValid
)

func (s FullnameStatus) String() string {
	switch s {
	case FullnameEmpty:
		return "empty"
	case FullnameTooShort:
		return "too_short"
	case FullnameValid:
		return "valid"
	}
	return "unknown"
}

func (s FullnameStatus) IsValid() bool {
	return s == FullnameValid
}

func (s FullnameStatus) Message() string {
	switch s {
	case FullnameEmpty:
		return MsgFullnameEmpty
	case FullnameTooShort:
		return MsgFullnameTooShort
	}
	return ""
}

// status is implemented by every field classification.
type status interface {
	comparable
	String() string
	IsValid() bool
	Message() string
}
