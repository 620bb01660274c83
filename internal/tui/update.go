package tui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
)

// Update handles all messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetWindowSize(msg.Width, msg.Height)
		if m.Forms.IsOpen() {
			m.Forms.Form = m.Forms.Form.WithWidth(m.formWidth())
		}
		switch m.UiState.Page() {
		case routes.PageTaskDetail:
			m.refreshTaskDetail()
		case routes.PageBoard:
			m.clampBoardSelection()
		}
		return m, nil

	case storeEventMsg:
		return m.handleStoreEvent(events.Event(msg))

	case busClosedMsg:
		return m, nil

	case signInDoneMsg:
		return m.handleSignInDone(msg)

	case noticeExpiredMsg:
		m.Notices.Remove(msg.id)
		return m, nil

	case spinner.TickMsg:
		if !m.signingIn {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.signingIn {
			return m, nil
		}
	}

	if m.Forms.IsOpen() {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		return m.handleKey(msg)
	}

	if m.UiState.Page() == routes.PageTaskDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleStoreEvent brings the page in line with a change announced on the
// bus, whoever made it.
func (m Model) handleStoreEvent(ev events.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForEvent(m.events)}
	route := m.UiState.Route()

	switch ev.Type {
	case events.AuthChanged:
		m.refreshUser()
		if !m.app.Auth.IsAuthenticated() && route.Page != routes.PageLogin {
			cmds = append(cmds, m.navigate(route.Path))
		}

	case events.CredentialsChanged:
		m.refreshUser()

	case events.ProjectsChanged, events.TasksChanged:
		if m.Drag.Active() {
			if _, ok := m.app.Store.Task(m.Drag.TaskID()); !ok {
				m.Drag.Cancel()
			}
		}

		switch route.Page {
		case routes.PageProjects:
			m.UiState.SetSelectedProject(m.UiState.SelectedProject(), len(m.app.Store.Projects()))
		case routes.PageBoard:
			if _, ok := m.currentProject(); !ok {
				cmds = append(cmds, m.navigate(routes.ProjectsPath),
					m.notify(state.LevelWarning, "The project was deleted"))
				break
			}
			m.clampBoardSelection()
		case routes.PageTaskDetail:
			if _, ok := m.currentTask(); !ok {
				cmds = append(cmds, m.navigate(routes.ProjectPath(route.ProjectID)),
					m.notify(state.LevelWarning, "The task was deleted"))
				break
			}
			m.refreshTaskDetail()
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSignInDone finishes the sign-in started by the login form.
func (m Model) handleSignInDone(msg signInDoneMsg) (tea.Model, tea.Cmd) {
	m.signingIn = false
	if msg.err != nil {
		return m, tea.Batch(m.notifyError("Sign in failed", msg.err), m.openLoginForm())
	}
	m.refreshUser()
	cmd := m.navigate(routes.DashboardPath)
	return m, tea.Batch(cmd, m.notify(state.LevelInfo, "Welcome, "+m.user.Name))
}

// formWidth is the width forms are laid out at.
func (m Model) formWidth() int {
	return max(min(m.UiState.Width()-10, 72), 30)
}

// columnHeight is the height of a board column.
func (m Model) columnHeight() int {
	// page title, blank line and status bar
	return max(m.UiState.Height()-3, 0)
}

// resizeViewport fits the task page viewport below the task header.
func (m *Model) resizeViewport() {
	width := max(m.UiState.Width()-4, 20)
	height := max(m.UiState.Height()-detailHeaderHeight, 3)
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
}
