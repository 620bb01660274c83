package project

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/styles"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a project and its task counts",
		RunE:  runShow,
	}

	// Required flags
	cmd.Flags().String("id", "", "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetString("id")
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

	project, err := lookup(cliInstance, projectID)
	if err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}
	tasks := cliInstance.App.Store.TasksByProject(project.ID)

	if formatter.Quiet {
		fmt.Println(project.ID)
		return nil
	}

	if formatter.JSON {
		counts := map[models.TaskStatus]int{}
		for _, t := range tasks {
			counts[t.Status]++
		}
		return formatter.Result("project", map[string]any{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
			"ownerId":     project.OwnerID,
			"createdAt":   project.CreatedAt,
			"updatedAt":   project.UpdatedAt,
			"tasks":       counts,
		})
	}

	return outputHuman(project, tasks)
}

func outputHuman(project models.Project, tasks []models.Task) error {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(project.Name))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(project.ID))
	content.WriteString("\n")

	if project.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		for _, line := range strings.Split(project.Description, "\n") {
			content.WriteString("  " + styles.ValueStyle.Render(line) + "\n")
		}
	}

	content.WriteString(styles.SectionStyle.Render("Tasks"))
	content.WriteString("\n")
	for _, col := range board.GroupByStatus(tasks) {
		content.WriteString(fmt.Sprintf("  %s %d\n", styles.Status(col.ID), len(col.Tasks)))
	}

	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.LabelStyle.Render("Created:"),
		styles.ValueStyle.Render(project.CreatedAt.Local().Format("2006-01-02 15:04")),
		styles.LabelStyle.Render("Updated:"),
		styles.ValueStyle.Render(project.UpdatedAt.Local().Format("2006-01-02 15:04")),
	))

	fmt.Println(styles.CardStyle.Render(content.String()))
	return nil
}
