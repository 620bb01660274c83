package huhforms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// TaskValues are the fields of the task form. Status and Priority hold the
// wire values of their enums.
type TaskValues struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     string
	Confirm     bool
}

// NewTaskValues returns the defaults of a task being created in status.
func NewTaskValues(status models.TaskStatus) *TaskValues {
	return &TaskValues{
		Status:   string(status),
		Priority: string(models.DefaultTaskPriority),
	}
}

// TaskValuesFrom fills the form fields from an existing task.
func TaskValuesFrom(t models.Task) *TaskValues {
	return &TaskValues{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Assignee:    t.AssigneeID,
		DueDate:     FormatDate(t.DueDate),
	}
}

// CreateTaskForm creates a huh form for adding/editing a task.
// The description area grows with the terminal through descriptionLines.
func CreateTaskForm(v *TaskValues, descriptionLines int) *huh.Form {
	var statusOptions []huh.Option[string]
	for _, s := range models.Statuses() {
		statusOptions = append(statusOptions, huh.NewOption(s.Title(), string(s)))
	}
	var priorityOptions []huh.Option[string]
	for _, p := range models.Priorities() {
		priorityOptions = append(priorityOptions, huh.NewOption(p.Title(), string(p)))
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter task title...").
			Validate(required("title")).
			Value(&v.Title),

		huh.NewText().
			Key("description").
			Title("Description (markdown)").
			Placeholder("Enter task description...").
			CharLimit(5000).
			Lines(max(descriptionLines, 3)).
			Value(&v.Description),

		huh.NewSelect[string]().
			Key("status").
			Title("Status").
			Options(statusOptions...).
			Value(&v.Status),

		huh.NewSelect[string]().
			Key("priority").
			Title("Priority").
			Options(priorityOptions...).
			Value(&v.Priority),

		huh.NewInput().
			Key("assignee").
			Title("Assignee (optional)").
			Value(&v.Assignee),

		huh.NewInput().
			Key("due").
			Title("Due date (optional)").
			Placeholder(DateLayout).
			Validate(validDate).
			Value(&v.DueDate),

		huh.NewConfirm().
			Key("confirm").
			Title("Submit this task?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Confirm),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMap()).WithShowHelp(false)
}
