package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/styles"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List tasks, optionally filtered by project, status or priority.",
		RunE:  runList,
	}

	// Filters
	cmd.Flags().String("project", "", "Only tasks of this project")
	cmd.Flags().String("status", "", "Only tasks with this status")
	cmd.Flags().String("priority", "", "Only tasks with this priority")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetString("project")
	statusStr, _ := cmd.Flags().GetString("status")
	priorityStr, _ := cmd.Flags().GetString("priority")

	formatter := cli.FormatterFromFlags(cmd)

	status, err := parseStatus(statusStr)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	priority, err := parsePriority(priorityStr)
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

	var tasks []models.Task
	if projectID != "" {
		if _, ok := cliInstance.App.Store.Project(projectID); !ok {
			return cli.Fail(formatter, fmt.Errorf("project %q %w", projectID, cli.ErrNotFound),
				"Run 'taskpilot project list' to see project IDs")
		}
		tasks = cliInstance.App.Store.TasksByProject(projectID)
	} else {
		tasks = cliInstance.App.Store.Tasks()
	}
	tasks = filter(tasks, status, priority)

	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Println(t.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Result("tasks", tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d task(s):\n\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("  %s  %s  [%s] [%s]  due %s\n",
			t.ID, t.Title, styles.Status(t.Status), styles.Priority(t.Priority), cli.FormatDate(t.DueDate))
	}
	return nil
}

// filter keeps tasks matching the non-empty status and priority.
func filter(tasks []models.Task, status models.TaskStatus, priority models.TaskPriority) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}
