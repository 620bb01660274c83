package state

import "github.com/thenoetrevino/taskpilot/internal/routes"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode  Mode = iota // Default navigation mode
	FormMode                // A huh form owns the keyboard
	ConfirmMode             // Confirming a deletion
	HelpMode                // Displaying help screen
)

// UIState manages the user interface state.
// This includes the current page, list and board selection,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// route is the page being shown, as resolved by the router
	route routes.Result

	// selectedColumn is the index of the currently selected board column
	selectedColumn int

	// selectedTask is the index of the selected task within the selected column
	selectedTask int

	// selectedProject is the index of the selected row on the projects page
	selectedProject int

	width  int
	height int

	mode Mode

	// taskScrollOffsets tracks the vertical scroll offset for each column
	// Key: column index, Value: index of first visible task
	taskScrollOffsets map[int]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:              NormalMode,
		taskScrollOffsets: make(map[int]int),
	}
}

// Route returns the page being shown.
func (s *UIState) Route() routes.Result {
	return s.route
}

// SetRoute switches page. Board selection resets when the project changes.
func (s *UIState) SetRoute(r routes.Result) {
	if r.ProjectID != s.route.ProjectID {
		s.selectedColumn = 0
		s.selectedTask = 0
		s.taskScrollOffsets = make(map[int]int)
	}
	s.route = r
}

// Page is a shortcut for Route().Page.
func (s *UIState) Page() routes.Page {
	return s.route.Page
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn sets the selected column, clamped to [0, count).
// The task selection resets to the top of the new column.
func (s *UIState) SetSelectedColumn(idx, count int) {
	idx = clamp(idx, count)
	if idx != s.selectedColumn {
		s.selectedTask = 0
	}
	s.selectedColumn = idx
}

// SelectedTask returns the index of the selected task within the selected column.
func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// SetSelectedTask sets the selected task, clamped to [0, count).
func (s *UIState) SetSelectedTask(idx, count int) {
	s.selectedTask = clamp(idx, count)
}

// SelectedProject returns the index of the selected project row.
func (s *UIState) SelectedProject() int {
	return s.selectedProject
}

// SetSelectedProject sets the selected project row, clamped to [0, count).
func (s *UIState) SetSelectedProject(idx, count int) {
	s.selectedProject = clamp(idx, count)
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetWindowSize records the terminal dimensions.
func (s *UIState) SetWindowSize(width, height int) {
	s.width = width
	s.height = height
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode sets the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// TaskScrollOffset returns the index of the first visible task of a column.
func (s *UIState) TaskScrollOffset(column int) int {
	return s.taskScrollOffsets[column]
}

// EnsureTaskVisible scrolls column so that task idx is among the visible
// rows, given how many cards fit.
func (s *UIState) EnsureTaskVisible(column, idx, visible int) {
	visible = max(visible, 1)
	offset := s.taskScrollOffsets[column]
	switch {
	case idx < offset:
		offset = idx
	case idx >= offset+visible:
		offset = idx - visible + 1
	}
	s.taskScrollOffsets[column] = max(offset, 0)
}

// clamp keeps idx in [0, count), or 0 when count is 0.
func clamp(idx, count int) int {
	if count <= 0 || idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}
