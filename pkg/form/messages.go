package form

// Inline messages shown next to fields.
const (
	MsgUsernameEmpty          = "Username cannot be empty"
	MsgUsernameTooShort       = "Username is too short"
	MsgUsernameInvalidEmail   = "Username is not a valid email address"
	MsgUsernameNotAvailable   = "Username is not available"
	MsgUsernameAvailable      = "Username is available"
	MsgPasswordEmpty          = "Password cannot be empty"
	MsgPasswordTooWeak        = "Password is too weak"
	MsgPasswordMismatch       = "Passwords do not match"
	MsgFullnameEmpty          = "Full name cannot be empty"
	MsgFullnameTooShort       = "Full name is too short"
	MsgUsernameDoesNotExist   = "User name does not exist"
	MsgWrongPassword          = "Error: wrong password"
	MsgUnableToSignIn         = "Unable to sign in"
	MsgUnableToSendResetEmail = "Unable to send reset email"
	MsgResetEmailSent         = "Reset email sent"
)

// Field placeholders.
const (
	PlaceholderUserID        = "User ID"
	PlaceholderUsername      = "Username"
	PlaceholderEmail         = "name@domain.abc"
	PlaceholderFullname      = "Full name"
	PlaceholderPassword      = "Password"
	PlaceholderPasswordAgain = "Password again"
)
