package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a task",
		Long: `Update any task field. Only the flags given are changed.
Pass an empty --due or --assignee to clear it.

A changed description is shown as a word diff.`,
		RunE: runUpdate,
	}

	// Required flags
	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional update flags
	cmd.Flags().String("title", "", "New task title")
	cmd.Flags().String("description", "", "New task description")
	cmd.Flags().String("status", "", "New status: todo, in-progress, done")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cmd.Flags().String("project", "", "Move the task to another project")
	cmd.Flags().String("assignee", "", "New assignee user ID (empty clears)")
	cmd.Flags().String("due", "", "New due date, YYYY-MM-DD (empty clears)")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	formatter := cli.FormatterFromFlags(cmd)

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	if patch.IsEmpty() {
		return cli.Fail(formatter, fmt.Errorf("%w: at least one field flag must be specified", cli.ErrNoUpdates),
			"See 'taskpilot task update --help' for the available flags")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	defer func() {
		if err := cliInstance.Close(ctx); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	before, err := lookup(cliInstance, taskID)
	if err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}

	if err := cliInstance.App.Store.UpdateTask(ctx, taskID, patch); err != nil {
		return cli.Fail(formatter, err, "")
	}
	after, _ := cliInstance.App.Store.Task(taskID)

	if formatter.Quiet {
		fmt.Println(after.ID)
		return nil
	}

	if formatter.JSON {
		result := map[string]any{"task": after}
		if p := DescriptionPatch(before.Description, after.Description); p != "" {
			result["descriptionPatch"] = p
		}
		return formatter.Result("updated", result)
	}

	fmt.Printf("✓ Task %s updated successfully\n", after.ID)
	if after.Title != before.Title {
		fmt.Printf("  Title: %s → %s\n", before.Title, after.Title)
	}
	if after.Status != before.Status {
		fmt.Printf("  Status: %s → %s\n", before.Status.Title(), after.Status.Title())
	}
	if after.Priority != before.Priority {
		fmt.Printf("  Priority: %s → %s\n", before.Priority.Title(), after.Priority.Title())
	}
	if after.ProjectID != before.ProjectID {
		fmt.Printf("  Project: %s → %s\n", before.ProjectID, after.ProjectID)
	}
	if after.AssigneeID != before.AssigneeID {
		fmt.Printf("  Assignee: %q → %q\n", before.AssigneeID, after.AssigneeID)
	}
	if cli.FormatDate(after.DueDate) != cli.FormatDate(before.DueDate) {
		fmt.Printf("  Due: %s → %s\n", cli.FormatDate(before.DueDate), cli.FormatDate(after.DueDate))
	}
	if d := DescriptionDiff(before.Description, after.Description); d != "" {
		fmt.Println("  Description:")
		fmt.Println(d)
	}
	return nil
}

// patchFromFlags turns the changed flags into a patch, validating enum and
// date values.
func patchFromFlags(cmd *cobra.Command) (models.TaskPatch, error) {
	var patch models.TaskPatch

	if v, ok := cli.StringFlag(cmd, "title"); ok {
		patch.Title = &v
	}
	if v, ok := cli.StringFlag(cmd, "description"); ok {
		patch.Description = &v
	}
	if v, ok := cli.StringFlag(cmd, "status"); ok {
		status, err := models.ParseTaskStatus(v)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	if v, ok := cli.StringFlag(cmd, "priority"); ok {
		priority, err := models.ParseTaskPriority(v)
		if err != nil {
			return patch, err
		}
		patch.Priority = &priority
	}
	if v, ok := cli.StringFlag(cmd, "project"); ok {
		patch.ProjectID = &v
	}
	if v, ok := cli.StringFlag(cmd, "assignee"); ok {
		if v == "" {
			patch.ClearAssignee = true
		} else {
			patch.AssigneeID = &v
		}
	}
	if v, ok := cli.StringFlag(cmd, "due"); ok {
		due, err := cli.ParseDueDate(v)
		if err != nil {
			return patch, err
		}
		if due == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = due
		}
	}

	return patch, nil
}
