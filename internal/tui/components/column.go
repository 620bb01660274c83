package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/tui/theme"
)

const (
	// ColumnWidth is the outer width of a board column
	ColumnWidth = 34

	// TaskCardHeight is the fixed height of the task card
	TaskCardHeight = 5

	taskTitleMaxLength = ColumnWidth - 10

	// columnOverhead is the two borders, the header and the scroll indicators
	columnOverhead = 5
)

// ColumnProps describes one board column to draw
type ColumnProps struct {
	Column   board.Column
	Selected bool // the cursor is in this column
	// SelectedTask is the index of the card under the cursor, -1 for none
	SelectedTask int
	// CarriedTaskID is drawn as carried wherever it appears
	CarriedTaskID string
	// DropTarget marks the column a carried card hovers over
	DropTarget   bool
	Height       int
	ScrollOffset int
}

// VisibleTasks is how many cards fit in a column of the given height.
func VisibleTasks(height int) int {
	return max((height-columnOverhead)/TaskCardHeight, 1)
}

// RenderColumn renders a complete column with its title and tasks
//
// Layout:
//
//	{Column Title} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	...
//	▼ (if more tasks below)
func RenderColumn(p ColumnProps) string {
	tasks := p.Column.Tasks
	header := fmt.Sprintf("%s (%d)", p.Column.Title, len(tasks))
	headerStyle := TitleStyle.Foreground(lipgloss.Color(StatusColor(p.Column.ID)))
	content := headerStyle.Render(header) + "\n"

	if len(tasks) == 0 {
		content += SubtleStyle.Padding(1, 0).Render("No tasks")
	} else {
		maxVisible := VisibleTasks(p.Height)
		offset := min(max(p.ScrollOffset, 0), len(tasks)-1)

		if offset > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		end := min(offset+maxVisible, len(tasks))
		for i, task := range tasks[offset:end] {
			state := CardNormal
			if task.ID == p.CarriedTaskID {
				state = CardCarried
			} else if p.Selected && offset+i == p.SelectedTask {
				state = CardSelected
			}
			content += RenderTask(task, state) + "\n"
		}

		if end < len(tasks) {
			content += IndicatorStyle.Render("▼ more below")
		}
	}

	style := ColumnStyle
	switch {
	case p.DropTarget:
		style = style.BorderForeground(lipgloss.Color(theme.CarriedBorder))
	case p.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if p.Height > 0 {
		// .Height() sets the content area, so leave room for the borders
		style = style.Height(p.Height - 2)
	}

	return style.Render(strings.TrimRight(content, "\n"))
}
