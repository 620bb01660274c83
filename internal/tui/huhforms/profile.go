package huhforms

import "charm.land/huh/v2"

// ProfileValues are the fields of the profile form
type ProfileValues struct {
	Name    string
	Email   string
	Confirm bool
}

// CreateProfileForm creates the profile editing form
func CreateProfileForm(v *ProfileValues) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Validate(required("name")).
			Value(&v.Name),

		huh.NewInput().
			Key("email").
			Title("Email").
			Validate(required("email")).
			Value(&v.Email),

		huh.NewConfirm().
			Key("confirm").
			Title("Save profile?").
			Affirmative("Save").
			Negative("Cancel").
			Value(&v.Confirm),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMap()).WithShowHelp(false)
}
