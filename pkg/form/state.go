package form

import "github.com/google/uuid"

// Phase is the controller's position in the sign-in reset flow.
type Phase string

const (
	PhaseEditing        Phase = "editing"
	PhaseResetRequested Phase = "reset_requested"
)

// FieldState is the published state of one input.
type FieldState struct {
	Value       string
	Placeholder string
	// Status is the latest settled classification, empty before the first one.
	Status string
	Valid  bool
	Error  string
}

// State is a snapshot of everything the view renders. Fields that are not
// part of the variant stay zero.
type State struct {
	FormID  uuid.UUID
	Variant Variant
	Phase   Phase

	Fullname      FieldState
	Username      FieldState
	Password      FieldState
	PasswordAgain FieldState

	// IsValid is true when every required field is valid.
	IsValid bool
	// CanSubmit gates the submit control. On sign-in it is also true while a
	// reset is requested and the username alone is valid.
	CanSubmit bool
	// CanRequestReset is true when "forgot password" is available.
	CanRequestReset bool
}

// Field returns the state of f.
func (s State) Field(f Field) FieldState {
	switch f {
	case FieldFullname:
		return s.Fullname
	case FieldUsername:
		return s.Username
	case FieldPassword:
		return s.Password
	case FieldPasswordAgain:
		return s.PasswordAgain
	}
	return FieldState{}
}

// Submission carries the field values handed to the submit handler.
type Submission struct {
	Fullname      string
	Username      string
	Password      string
	PasswordAgain string
}

// ErrorOverride replaces inline error texts. Nil entries are left alone.
type ErrorOverride struct {
	Fullname *string
	Username *string
	Password *string
}

// Init is the one-time configuration applied by SetInit.
type Init struct {
	// Mode replaces the username mode. Nil keeps the current one.
	Mode UsernameMode
	// Username and Fullname prefill their fields when non-empty.
	Username string
	Fullname string
	// OnSubmit replaces the submit handler when non-nil.
	OnSubmit SubmitFunc
}
