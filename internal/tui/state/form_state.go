package state

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/taskpilot/internal/tui/huhforms"
)

// FormKind identifies which form is open
type FormKind int

const (
	NoForm FormKind = iota
	LoginForm
	CreateProjectForm
	EditProjectForm
	DeleteProjectForm
	CreateTaskForm
	EditTaskForm
	DeleteTaskForm
	ProfileForm
)

// FormState holds the open huh form and the values it writes into.
// Only the values matching Kind are set.
type FormState struct {
	Kind FormKind
	Form *huh.Form

	// TargetID is the project or task being edited or deleted
	TargetID string

	Login   *huhforms.LoginValues
	Project *huhforms.ProjectValues
	Task    *huhforms.TaskValues
	Profile *huhforms.ProfileValues
	Confirm bool
}

// NewFormState creates a FormState with no form open.
func NewFormState() *FormState {
	return &FormState{}
}

// Open replaces any open form. The caller sets the value pointers the
// form was built over.
func (s *FormState) Open(kind FormKind, form *huh.Form, targetID string) {
	s.Reset()
	s.Kind = kind
	s.Form = form
	s.TargetID = targetID
}

// IsOpen reports whether a form is shown.
func (s *FormState) IsOpen() bool {
	return s.Kind != NoForm && s.Form != nil
}

// Reset closes the form and drops its values.
func (s *FormState) Reset() {
	*s = FormState{}
}

// ConfirmSave marks an editing form as confirmed so it can be submitted
// without walking through its remaining fields. Delete confirmations are
// never confirmed this way; it reports false for them.
func (s *FormState) ConfirmSave() bool {
	switch s.Kind {
	case LoginForm:
		return s.Login != nil
	case CreateProjectForm, EditProjectForm:
		if s.Project == nil {
			return false
		}
		s.Project.Confirm = true
	case CreateTaskForm, EditTaskForm:
		if s.Task == nil {
			return false
		}
		s.Task.Confirm = true
	case ProfileForm:
		if s.Profile == nil {
			return false
		}
		s.Profile.Confirm = true
	default:
		return false
	}
	return true
}
