package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project.

Examples:
  # Simple task, status todo and priority medium
  taskpilot task create --project=PROJECT_ID --title="Fix login bug"

  # Fully specified
  taskpilot task create --project=PROJECT_ID --title="Write docs" \
    --description="User guide" --status="in-progress" --priority=high \
    --assignee=1 --due=2024-03-01

  # Quiet mode for bash capture
  TASK_ID=$(taskpilot task create --project=PROJECT_ID --title="Ship it" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("project", "", "Project ID (required)")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().String("status", "", "Status: todo, in-progress, done (default todo)")
	cmd.Flags().String("priority", "", "Priority: low, medium, high (default medium)")
	cmd.Flags().String("assignee", "", "Assignee user ID")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title, _ := cmd.Flags().GetString("title")
	projectID, _ := cmd.Flags().GetString("project")
	description, _ := cmd.Flags().GetString("description")
	statusStr, _ := cmd.Flags().GetString("status")
	priorityStr, _ := cmd.Flags().GetString("priority")
	assignee, _ := cmd.Flags().GetString("assignee")
	dueStr, _ := cmd.Flags().GetString("due")

	formatter := cli.FormatterFromFlags(cmd)

	// Validate flags before touching storage
	status, err := parseStatus(statusStr)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	priority, err := parsePriority(priorityStr)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	if status == "" {
		status = models.DefaultTaskStatus
	}
	if priority == "" {
		priority = models.DefaultTaskPriority
	}
	due, err := cli.ParseDueDate(dueStr)
	if err != nil {
		return cli.Fail(formatter, err, "")
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

	task, err := cliInstance.App.Store.AddTask(ctx, models.NewTask{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		ProjectID:   projectID,
		AssigneeID:  assignee,
		DueDate:     due,
	})
	if err != nil {
		return cli.Fail(formatter, err, "Run 'taskpilot project list' to see project IDs")
	}

	// Output based on mode (JSON/Quiet/Human)
	if formatter.Quiet {
		fmt.Println(task.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("task", task)
	}

	fmt.Printf("✓ Task '%s' created successfully (ID: %s)\n", task.Title, task.ID)
	fmt.Printf("  Status: %s  Priority: %s\n", task.Status.Title(), task.Priority.Title())
	if task.DueDate != nil {
		fmt.Printf("  Due: %s\n", cli.FormatDate(task.DueDate))
	}

	return nil
}
