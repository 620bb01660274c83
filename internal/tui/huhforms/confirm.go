package huhforms

import "charm.land/huh/v2"

// CreateDeleteForm asks to confirm a deletion. It defaults to "No".
func CreateDeleteForm(title, description string, confirm *bool) *huh.Form {
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title(title).
			Description(description).
			Affirmative("Delete").
			Negative("Keep").
			Value(confirm),
	))
	return form.WithKeyMap(CreateKeyMap()).WithShowHelp(false)
}
