package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ProjectRow is one line of the projects page
type ProjectRow struct {
	Project models.Project
	Tasks   int
	Done    int
}

// RenderProjectList renders the projects page list with the selected row
// highlighted.
func RenderProjectList(rows []ProjectRow, selected, width int) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("No projects yet. Press n to create one.")
	}

	nameWidth := max(min(width/3, 40), 12)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, TitleStyle.Render(fmt.Sprintf("  %-*s %-9s %s", nameWidth, "Name", "Tasks", "Description")))

	for i, row := range rows {
		desc := strings.ReplaceAll(row.Project.Description, "\n", " ")
		descWidth := max(width-nameWidth-16, 10)
		line := fmt.Sprintf("%-*s %-9s %s",
			nameWidth, Truncate(row.Project.Name, nameWidth-3),
			fmt.Sprintf("%d/%d", row.Done, row.Tasks),
			Truncate(desc, descWidth))

		if i == selected {
			lines = append(lines, SelectedRowStyle.Render("› "+line))
		} else {
			lines = append(lines, lipgloss.NewStyle().Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}
