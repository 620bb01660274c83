package view

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/styles"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// columnWidth is the rendered width of one board column
const columnWidth = 28

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board of a project",
		Long:  "Show the tasks of a project grouped into the To Do, In Progress and Done columns.",
		RunE:  runBoard,
	}

	// Required flags
	cmd.Flags().String("project", "", "Project ID (required)")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (status and ID per task)")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetString("project")
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

	project, ok := cliInstance.App.Store.Project(projectID)
	if !ok {
		return cli.Fail(formatter, fmt.Errorf("project %q %w", projectID, cli.ErrNotFound),
			"Run 'taskpilot project list' to see project IDs")
	}
	columns := board.GroupByStatus(cliInstance.App.Store.TasksByProject(project.ID))

	if formatter.Quiet {
		for _, col := range columns {
			for _, t := range col.Tasks {
				fmt.Printf("%s\t%s\n", col.ID, t.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		out := make([]columnJSON, 0, len(columns))
		for _, col := range columns {
			out = append(out, columnJSON{ID: col.ID, Title: col.Title, Tasks: col.Tasks})
		}
		return formatter.Result("board", map[string]any{
			"project": project,
			"columns": out,
		})
	}

	fmt.Println(styles.TitleStyle.Render(project.Name))
	if project.Description != "" {
		fmt.Println(styles.SubtitleStyle.Render(project.Description))
	}
	fmt.Println()

	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		rendered = append(rendered, renderColumn(col))
	}
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return nil
}

func renderColumn(col board.Column) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d)\n", styles.Status(col.ID), len(col.Tasks)))
	if len(col.Tasks) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("No tasks"))
	}
	for i, t := range col.Tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderCard(t))
	}
	return lipgloss.NewStyle().Width(columnWidth).MarginRight(2).Render(b.String())
}

func renderCard(t models.Task) string {
	meta := styles.Priority(t.Priority)
	if t.DueDate != nil {
		meta += "  " + styles.SubtitleStyle.Render("due "+cli.FormatDate(t.DueDate))
	}
	return fmt.Sprintf("• %s\n  %s", t.Title, meta)
}
