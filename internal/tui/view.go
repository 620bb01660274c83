package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/dashboard"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/tui/components"
	"github.com/thenoetrevino/taskpilot/internal/tui/notifications"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
	"github.com/thenoetrevino/taskpilot/internal/tui/theme"
)

// detailHeaderHeight is the task page chrome above the description viewport
const detailHeaderHeight = 16

// View renders the current page with any open form or help as a centered
// overlay.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.BackgroundColor = lipgloss.Color(theme.Background)

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().
			Height(m.UiState.Height()-1).
			MaxHeight(m.UiState.Height()-1).
			Render(m.renderPage()),
		m.renderStatusBar(),
	)
	layers := []*lipgloss.Layer{lipgloss.NewLayer(base)}

	if m.UiState.Page() != routes.PageLogin {
		if overlay := m.renderOverlay(); overlay != "" {
			layers = append(layers, m.centeredLayer(overlay))
		}
	}

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}

// centeredLayer places content in the middle of the window.
func (m Model) centeredLayer(content string) *lipgloss.Layer {
	x := max((m.UiState.Width()-lipgloss.Width(content))/2, 0)
	y := max((m.UiState.Height()-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y)
}

func (m Model) renderPage() string {
	switch m.UiState.Page() {
	case routes.PageLogin:
		return m.viewLogin()
	case routes.PageProjects:
		return m.viewProjects()
	case routes.PageBoard:
		return m.viewBoard()
	case routes.PageTaskDetail:
		return m.viewTaskDetail()
	case routes.PageProfile:
		return m.viewProfile()
	default:
		return m.viewDashboard()
	}
}

// renderOverlay returns the open form or help box, if any.
func (m Model) renderOverlay() string {
	if m.UiState.Mode() == state.HelpMode {
		return components.RenderHelp("Keys: "+pageTitle(m.UiState.Page()), m.helpEntries())
	}
	if !m.Forms.IsOpen() {
		return ""
	}

	var title string
	style := components.FormBoxStyle
	switch m.Forms.Kind {
	case state.CreateProjectForm:
		title, style = "New Project", components.ProjectFormBoxStyle
	case state.EditProjectForm:
		title = "Edit Project"
	case state.CreateTaskForm:
		title = "New Task"
	case state.EditTaskForm:
		title = "Edit Task"
	case state.ProfileForm:
		title = "Edit Profile"
	case state.DeleteProjectForm, state.DeleteTaskForm:
		style = components.DeleteConfirmBoxStyle
	}

	content := m.Forms.Form.View()
	if title != "" {
		content = components.TitleStyle.Render(title) + "\n\n" + content
	}
	return style.Render(content)
}

func (m Model) renderStatusBar() string {
	props := components.StatusBarProps{
		Width: m.UiState.Width(),
		Left:  m.location(),
		Hint:  m.hint(),
	}
	// The newest notice wins the status line.
	if all := m.Notices.All(); len(all) > 0 {
		props.Notice = notifications.RenderInline(all[len(all)-1])
	}
	return components.RenderStatusBar(props)
}

// location is the breadcrumb of the current page.
func (m Model) location() string {
	route := m.UiState.Route()
	switch route.Page {
	case routes.PageBoard:
		if p, ok := m.currentProject(); ok {
			return "Projects › " + p.Name
		}
	case routes.PageTaskDetail:
		if p, ok := m.currentProject(); ok {
			if t, ok := m.currentTask(); ok {
				return "Projects › " + p.Name + " › " + components.Truncate(t.Title, 30)
			}
		}
	}
	return pageTitle(route.Page)
}

// hint is the right side of the status bar.
func (m Model) hint() string {
	switch {
	case m.Drag.Active():
		return "h/l carry · space/enter drop · esc cancel"
	case m.UiState.Mode() == state.FormMode:
		return fmt.Sprintf("enter next · %s save · esc cancel", m.keys.SaveForm)
	case m.UiState.Page() == routes.PageLogin:
		return "ctrl+c quit"
	}
	return fmt.Sprintf("%s help · %s quit", m.keys.ShowHelp, m.keys.Quit)
}

func pageTitle(p routes.Page) string {
	switch p {
	case routes.PageLogin:
		return "Sign in"
	case routes.PageProjects:
		return "Projects"
	case routes.PageBoard:
		return "Board"
	case routes.PageTaskDetail:
		return "Task"
	case routes.PageProfile:
		return "Profile"
	default:
		return "Dashboard"
	}
}

func (m Model) pageHeader(title string) string {
	return components.TitleStyle.Render(title) + "\n"
}

func (m Model) viewLogin() string {
	var body string
	if m.signingIn {
		body = m.spinner.View() + " Signing in..."
	} else if m.Forms.IsOpen() {
		body = m.Forms.Form.View()
	}

	box := components.FormBoxStyle.Width(m.formWidth() + 6).Render(
		components.TitleStyle.Render("Sign in to TaskPilot") + "\n" +
			components.SubtleStyle.Render("Any name, email and password will do.") + "\n\n" +
			body,
	)
	return lipgloss.Place(m.UiState.Width(), m.UiState.Height()-1, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewDashboard() string {
	stats := dashboard.Compute(m.app.Store.Projects(), m.app.Store.Tasks())
	greeting := fmt.Sprintf("Welcome back, %s", m.user.Name)
	return m.pageHeader("Dashboard") +
		components.SubtleStyle.Render(greeting) + "\n\n" +
		components.RenderDashboard(stats, m.UiState.Width())
}

func (m Model) viewProjects() string {
	projects := m.app.Store.Projects()
	rows := make([]components.ProjectRow, len(projects))
	for i, p := range projects {
		rows[i].Project = p
		for _, t := range m.app.Store.TasksByProject(p.ID) {
			rows[i].Tasks++
			if t.Status == models.StatusDone {
				rows[i].Done++
			}
		}
	}
	return m.pageHeader(fmt.Sprintf("Projects (%d)", len(projects))) + "\n" +
		components.RenderProjectList(rows, m.UiState.SelectedProject(), m.UiState.Width())
}

func (m Model) viewBoard() string {
	project, ok := m.currentProject()
	if !ok {
		return m.pageHeader("Project not found") +
			components.SubtleStyle.Render("It may have been deleted. Press esc to go back to projects.")
	}

	cols := m.boardColumns()
	if m.Drag.Active() {
		cols = carry(cols, m.Drag.TaskID(), m.Drag.Target())
	}

	height := m.columnHeight()
	var rendered []string
	for i, col := range cols {
		props := components.ColumnProps{
			Column:       col,
			Selected:     i == m.UiState.SelectedColumn() && !m.Drag.Active(),
			SelectedTask: m.UiState.SelectedTask(),
			Height:       height,
			ScrollOffset: m.UiState.TaskScrollOffset(i),
		}
		if m.Drag.Active() {
			props.CarriedTaskID = m.Drag.TaskID()
			props.DropTarget = i == m.Drag.Target()
			if props.DropTarget {
				props.ScrollOffset = max(len(col.Tasks)-components.VisibleTasks(height), 0)
			}
		}
		rendered = append(rendered, components.RenderColumn(props))
	}

	title := project.Name
	if project.Description != "" {
		title += components.SubtleStyle.Render("  " + strings.ReplaceAll(project.Description, "\n", " "))
	}
	return m.pageHeader(title) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// carry shows taskID at the bottom of column target, where it would land.
func carry(cols []board.Column, taskID string, target int) []board.Column {
	out := make([]board.Column, len(cols))
	var carried *models.Task
	for i, col := range cols {
		out[i] = board.Column{ColumnDef: col.ColumnDef, Tasks: make([]models.Task, 0, len(col.Tasks))}
		for _, t := range col.Tasks {
			if t.ID == taskID {
				carried = &t
				continue
			}
			out[i].Tasks = append(out[i].Tasks, t)
		}
	}
	if carried != nil && target >= 0 && target < len(out) {
		out[target].Tasks = append(out[target].Tasks, *carried)
	}
	return out
}

func (m Model) viewTaskDetail() string {
	task, ok := m.currentTask()
	if !ok {
		return m.pageHeader("Task not found") +
			components.SubtleStyle.Render("It may have been deleted. Press esc to go back to the board.")
	}
	project, _ := m.currentProject()

	return components.RenderTaskHeader(task, project) + "\n" +
		components.TitleStyle.Render("Description") + "\n" +
		m.viewport.View()
}

func (m Model) viewProfile() string {
	actions := components.SubtleStyle.Render(fmt.Sprintf("%s edit profile · %s sign out",
		m.keys.EditProfile, m.keys.SignOut))
	return m.pageHeader("Profile Settings") + "\n" +
		components.RenderProfile(m.user) + "\n" + actions
}

// helpEntries lists the key bindings of the current page.
func (m Model) helpEntries() []components.HelpEntry {
	km := m.keys
	global := []components.HelpEntry{
		{Key: km.ShowDashboard + "/" + km.ShowProjects + "/" + km.ShowProfile, Action: "dashboard / projects / profile"},
		{Key: km.ShowHelp, Action: "toggle help"},
		{Key: km.Quit, Action: "quit"},
	}

	var page []components.HelpEntry
	switch m.UiState.Page() {
	case routes.PageProjects:
		page = []components.HelpEntry{
			{Key: km.NextTask + "/" + km.PrevTask, Action: "move cursor"},
			{Key: km.OpenProject, Action: "open board"},
			{Key: km.CreateProject, Action: "new project"},
			{Key: km.EditProject, Action: "edit project"},
			{Key: km.DeleteProject, Action: "delete project"},
		}
	case routes.PageBoard:
		page = []components.HelpEntry{
			{Key: km.PrevColumn + "/" + km.NextColumn, Action: "switch column"},
			{Key: km.NextTask + "/" + km.PrevTask, Action: "move cursor"},
			{Key: km.ViewTask, Action: "open task"},
			{Key: km.AddTask, Action: "new task"},
			{Key: km.EditTask, Action: "edit task"},
			{Key: km.DeleteTask, Action: "delete task"},
			{Key: km.MoveTaskLeft + "/" + km.MoveTaskRight, Action: "move task left / right"},
			{Key: km.PickUpTask, Action: "pick up task, then carry and drop"},
			{Key: km.CancelDrag, Action: "put a carried task back"},
			{Key: km.Back, Action: "back to projects"},
		}
	case routes.PageTaskDetail:
		page = []components.HelpEntry{
			{Key: km.EditTask, Action: "edit task"},
			{Key: km.DeleteTask, Action: "delete task"},
			{Key: km.MoveTaskLeft + "/" + km.MoveTaskRight, Action: "move task left / right"},
			{Key: "↑/↓", Action: "scroll description"},
			{Key: km.Back, Action: "back to board"},
		}
	case routes.PageProfile:
		page = []components.HelpEntry{
			{Key: km.EditProfile, Action: "edit profile"},
			{Key: km.SignOut, Action: "sign out"},
		}
	}
	return append(page, global...)
}
