package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/tui/components"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
)

// matches reports whether the key press is one of keys.
func matches(msg tea.KeyPressMsg, keys ...string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// handleKey dispatches a key press outside of forms.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys

	if m.UiState.Mode() == state.HelpMode {
		if matches(msg, km.ShowHelp, km.Back, km.Quit) {
			m.UiState.SetMode(state.NormalMode)
		}
		return m, nil
	}

	// A carried card takes every key until it is dropped.
	if m.Drag.Active() {
		return m.handleDragKey(msg)
	}

	switch {
	case matches(msg, km.Quit):
		return m, tea.Quit
	case matches(msg, km.ShowHelp):
		m.UiState.SetMode(state.HelpMode)
		return m, nil
	case matches(msg, km.ShowDashboard):
		return m, m.navigate(routes.DashboardPath)
	case matches(msg, km.ShowProjects):
		return m, m.navigate(routes.ProjectsPath)
	case matches(msg, km.ShowProfile):
		return m, m.navigate(routes.ProfilePath)
	}

	switch m.UiState.Page() {
	case routes.PageDashboard:
		if matches(msg, km.OpenProject) {
			return m, m.navigate(routes.ProjectsPath)
		}
	case routes.PageProjects:
		return m.handleProjectsKey(msg)
	case routes.PageBoard:
		return m.handleBoardKey(msg)
	case routes.PageTaskDetail:
		return m.handleTaskDetailKey(msg)
	case routes.PageProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m Model) handleProjectsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys
	count := len(m.app.Store.Projects())

	switch {
	case matches(msg, km.NextTask, "down"):
		m.UiState.SetSelectedProject(m.UiState.SelectedProject()+1, count)
	case matches(msg, km.PrevTask, "up"):
		m.UiState.SetSelectedProject(m.UiState.SelectedProject()-1, count)
	case matches(msg, km.OpenProject):
		if p, ok := m.selectedProject(); ok {
			return m, m.navigate(routes.ProjectPath(p.ID))
		}
	case matches(msg, km.CreateProject):
		return m, m.openProjectForm(nil)
	case matches(msg, km.EditProject):
		if p, ok := m.selectedProject(); ok {
			return m, m.openProjectForm(&p)
		}
	case matches(msg, km.DeleteProject):
		if p, ok := m.selectedProject(); ok {
			return m, m.openDeleteProjectForm(p)
		}
	case matches(msg, km.Back):
		return m, m.navigate(routes.DashboardPath)
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys
	if _, ok := m.currentProject(); !ok {
		if matches(msg, km.Back) {
			return m, m.navigate(routes.ProjectsPath)
		}
		return m, nil
	}

	cols := m.boardColumns()
	col := m.UiState.SelectedColumn()
	visible := components.VisibleTasks(m.columnHeight())

	switch {
	case matches(msg, km.PrevColumn, "left"):
		m.UiState.SetSelectedColumn(col-1, len(cols))
	case matches(msg, km.NextColumn, "right"):
		m.UiState.SetSelectedColumn(col+1, len(cols))
	case matches(msg, km.NextTask, "down"):
		m.UiState.SetSelectedTask(m.UiState.SelectedTask()+1, len(cols[col].Tasks))
	case matches(msg, km.PrevTask, "up"):
		m.UiState.SetSelectedTask(m.UiState.SelectedTask()-1, len(cols[col].Tasks))
	case matches(msg, km.ViewTask):
		if t, ok := m.selectedTask(); ok {
			return m, m.navigate(routes.TaskPath(t.ProjectID, t.ID))
		}
	case matches(msg, km.PickUpTask):
		if t, ok := m.selectedTask(); ok {
			m.Drag.PickUp(t.ID, col)
		}
	case matches(msg, km.AddTask):
		return m, m.openTaskForm(nil, cols[col].ID)
	case matches(msg, km.EditTask):
		if t, ok := m.selectedTask(); ok {
			return m, m.openTaskForm(&t, t.Status)
		}
	case matches(msg, km.DeleteTask):
		if t, ok := m.selectedTask(); ok {
			return m, m.openDeleteTaskForm(t)
		}
	case matches(msg, km.MoveTaskLeft):
		if t, ok := m.selectedTask(); ok {
			return m, m.moveTask(t, -1)
		}
	case matches(msg, km.MoveTaskRight):
		if t, ok := m.selectedTask(); ok {
			return m, m.moveTask(t, 1)
		}
	case matches(msg, km.Back):
		return m, m.navigate(routes.ProjectsPath)
	}

	m.UiState.EnsureTaskVisible(m.UiState.SelectedColumn(), m.UiState.SelectedTask(), visible)
	return m, nil
}

// handleDragKey carries, drops or puts back the picked-up card.
func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys
	columns := len(board.Columns())

	switch {
	case matches(msg, km.PrevColumn, "left"):
		m.Drag.Carry(-1, columns)
	case matches(msg, km.NextColumn, "right"):
		m.Drag.Carry(1, columns)
	case matches(msg, km.CancelDrag):
		m.Drag.Cancel()
	case matches(msg, km.PickUpTask, "enter"):
		return m, m.dropTask()
	}
	return m, nil
}

// dropTask drops the carried card on the column it hovers over.
func (m *Model) dropTask() tea.Cmd {
	taskID, target := m.Drag.Drop()
	column := board.Columns()[target]

	ok, err := m.app.Board.OnDragEnd(m.ctx, taskID, string(column.ID))
	if err != nil {
		return m.notifyError("Move failed", err)
	}
	if !ok {
		return nil
	}
	m.selectTask(taskID)
	if t, found := m.app.Store.Task(taskID); found {
		return m.notify(state.LevelInfo, fmt.Sprintf("Moved '%s' to %s", t.Title, column.Title))
	}
	return nil
}

// moveTask shifts a task one column left (-1) or right (+1).
func (m *Model) moveTask(t models.Task, delta int) tea.Cmd {
	var (
		status models.TaskStatus
		err    error
	)
	if delta < 0 {
		status, err = m.app.Board.MovePrev(m.ctx, t.ID)
	} else {
		status, err = m.app.Board.MoveNext(m.ctx, t.ID)
	}
	if err != nil {
		return m.notifyError("Move failed", err)
	}
	if m.UiState.Page() == routes.PageBoard {
		m.selectTask(t.ID)
	}
	return m.notify(state.LevelInfo, fmt.Sprintf("Moved '%s' to %s", t.Title, status.Title()))
}

func (m Model) handleTaskDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys
	route := m.UiState.Route()

	task, ok := m.currentTask()
	if !ok {
		if matches(msg, km.Back) {
			return m, m.navigate(routes.ProjectPath(route.ProjectID))
		}
		return m, nil
	}

	switch {
	case matches(msg, km.Back):
		return m, m.navigate(routes.ProjectPath(route.ProjectID))
	case matches(msg, km.EditTask):
		return m, m.openTaskForm(&task, task.Status)
	case matches(msg, km.DeleteTask):
		return m, m.openDeleteTaskForm(task)
	case matches(msg, km.MoveTaskLeft):
		return m, m.moveTask(task, -1)
	case matches(msg, km.MoveTaskRight):
		return m, m.moveTask(task, 1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleProfileKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	km := m.keys
	switch {
	case matches(msg, km.EditProfile):
		return m, m.openProfileForm()
	case matches(msg, km.SignOut):
		if err := m.app.Auth.Logout(m.ctx); err != nil {
			return m, m.notifyError("Sign out failed", err)
		}
		return m, tea.Batch(m.navigate(routes.LoginPath), m.notify(state.LevelInfo, "Signed out"))
	case matches(msg, km.Back):
		return m, m.navigate(routes.DashboardPath)
	}
	return m, nil
}
