package huhforms

import "charm.land/huh/v2"

// ProjectValues are the fields of the project form
type ProjectValues struct {
	Name        string
	Description string
	Confirm     bool
}

// CreateProjectForm creates a huh form for adding or editing a project
func CreateProjectForm(v *ProjectValues, editing bool) *huh.Form {
	confirmTitle := "Create this project?"
	if editing {
		confirmTitle = "Save changes?"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Project Name").
			Placeholder("Enter project name...").
			Validate(required("name")).
			Value(&v.Name),

		huh.NewText().
			Key("description").
			Title("Description (optional)").
			Placeholder("Enter project description...").
			CharLimit(500).
			Lines(3).
			Value(&v.Description),

		huh.NewConfirm().
			Key("confirm").
			Title(confirmTitle).
			Affirmative("Yes").
			Negative("No").
			Value(&v.Confirm),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMap()).WithShowHelp(false)
}
