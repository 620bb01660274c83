package task

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/styles"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a task",
		RunE:  runShow,
	}

	// Required flags
	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	defer func() {
		if err := cliInstance.Close(ctx); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	task, err := lookup(cliInstance, taskID)
	if err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}

	if formatter.Quiet {
		fmt.Println(task.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("task", task)
	}

	projectName := task.ProjectID
	if p, ok := cliInstance.App.Store.Project(task.ProjectID); ok {
		projectName = p.Name
	}
	return outputHuman(task, projectName)
}

func outputHuman(task models.Task, projectName string) error {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(projectName + ": " + task.Title))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(task.ID))
	content.WriteString("\n\n")

	// Metadata row
	content.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s",
		styles.LabelStyle.Render("Status:"), styles.Status(task.Status),
		styles.LabelStyle.Render("Priority:"), styles.Priority(task.Priority),
		styles.LabelStyle.Render("Due:"), styles.ValueStyle.Render(cli.FormatDate(task.DueDate)),
	))
	content.WriteString("\n")
	if task.AssigneeID != "" {
		content.WriteString(fmt.Sprintf("%s %s\n",
			styles.LabelStyle.Render("Assignee:"), styles.ValueStyle.Render(task.AssigneeID)))
	}

	// Description
	if task.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		for _, line := range strings.Split(task.Description, "\n") {
			content.WriteString("  " + styles.ValueStyle.Render(line) + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.LabelStyle.Render("Created:"),
		styles.ValueStyle.Render(task.CreatedAt.Local().Format("2006-01-02 15:04")),
		styles.LabelStyle.Render("Updated:"),
		styles.ValueStyle.Render(task.UpdatedAt.Local().Format("2006-01-02 15:04")),
	))

	fmt.Println(styles.CardStyle.Render(content.String()))
	return nil
}
