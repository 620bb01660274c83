package view

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/styles"
	"github.com/thenoetrevino/taskpilot/internal/dashboard"
)

// barWidth is the length of the longest bar in the charts
const barWidth = 30

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show project and task statistics",
		RunE:  runDashboard,
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (totals only)")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	st := cliInstance.App.Store
	stats := dashboard.Compute(st.Projects(), st.Tasks())

	if formatter.Quiet {
		fmt.Printf("%d %d %d %d %d\n",
			stats.TotalProjects, stats.TotalTasks, stats.CompletedTasks, stats.InProgressTasks, stats.TodoTasks)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("dashboard", stats)
	}

	fmt.Print(RenderDashboard(stats))
	return nil
}

// RenderDashboard draws the stat lines and the two bar charts as text.
func RenderDashboard(stats dashboard.Stats) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d   %s %d\n",
		styles.LabelStyle.Render("Projects:"), stats.TotalProjects,
		styles.LabelStyle.Render("Tasks:"), stats.TotalTasks,
		styles.LabelStyle.Render("Completed:"), stats.CompletedTasks,
		styles.LabelStyle.Render("In Progress:"), stats.InProgressTasks,
	))

	if !stats.HasTasks() {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("No tasks yet"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %.0f%%\n", styles.LabelStyle.Render("Completion:"), stats.CompletionRate()*100))

	b.WriteString(styles.SectionStyle.Render("Tasks by status"))
	b.WriteString("\n")
	for _, s := range stats.StatusSlices {
		b.WriteString(bar(s.Name, s.Value, stats.TotalTasks, s.Color))
	}

	if len(stats.ProjectLoads) > 0 {
		most := 0
		for _, p := range stats.ProjectLoads {
			most = max(most, p.Tasks)
		}
		b.WriteString(styles.SectionStyle.Render("Tasks by project"))
		b.WriteString("\n")
		for _, p := range stats.ProjectLoads {
			b.WriteString(bar(p.Name, p.Tasks, most, dashboard.ColorProjectBar))
		}
	}

	return b.String()
}

func bar(label string, value, total int, color string) string {
	width := 0
	if total > 0 {
		width = value * barWidth / total
	}
	if width == 0 && value > 0 {
		width = 1
	}
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", width))
	return fmt.Sprintf("  %-18s %s %d\n", label, filled, value)
}
