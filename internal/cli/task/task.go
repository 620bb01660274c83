// Package task holds all cli commands related to tasks
//
// e.g., taskpilot task ...
package task

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}

const listSuggestion = "Run 'taskpilot task list' to see task IDs"

// lookup finds a task or reports it as not found.
func lookup(c *cli.CLI, id string) (models.Task, error) {
	t, ok := c.App.Store.Task(id)
	if !ok {
		return models.Task{}, fmt.Errorf("task %q %w", id, cli.ErrNotFound)
	}
	return t, nil
}

// parseStatus returns an empty status for an empty value.
func parseStatus(s string) (models.TaskStatus, error) {
	if s == "" {
		return "", nil
	}
	return models.ParseTaskStatus(s)
}

// parsePriority returns an empty priority for an empty value.
func parsePriority(s string) (models.TaskPriority, error) {
	if s == "" {
		return "", nil
	}
	return models.ParseTaskPriority(s)
}
