package huhforms

import "charm.land/huh/v2"

// LoginValues are the fields of the sign-in form
type LoginValues struct {
	Name     string
	Email    string
	Password string
}

// CreateLoginForm creates the sign-in form. Any name, email and password
// are accepted, but none may be blank.
func CreateLoginForm(v *LoginValues) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Placeholder("Your name").
			Validate(required("name")).
			Value(&v.Name),

		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("you@example.com").
			Validate(required("email")).
			Value(&v.Email),

		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(required("password")).
			Value(&v.Password),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMap()).WithShowHelp(false)
}
