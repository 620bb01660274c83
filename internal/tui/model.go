// Package tui is the interactive terminal front end: the login, dashboard,
// projects, board, task and profile pages over one app.App.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/config"
	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/store"
	"github.com/thenoetrevino/taskpilot/internal/tui/components"
	"github.com/thenoetrevino/taskpilot/internal/tui/huhforms"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
	"github.com/thenoetrevino/taskpilot/internal/tui/theme"
)

// Model represents the application state for the TUI
type Model struct {
	ctx    context.Context
	app    *app.App
	keys   config.KeyMappings
	logger *slog.Logger

	huhTheme huh.Theme

	UiState *state.UIState
	Drag    *state.DragState
	Forms   *state.FormState
	Notices *state.NotificationState

	spinner  spinner.Model
	viewport viewport.Model

	events      <-chan events.Event
	unsubscribe func()

	signingIn bool
	user      models.User
}

// Option configures a Model
type Option func(*options)

type options struct {
	startPath string
	logger    *slog.Logger
}

// WithStartPath opens the TUI at path instead of the dashboard. The sign-in
// gate still applies.
func WithStartPath(path string) Option {
	return func(o *options) { o.startPath = path }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates the root model over a and subscribes it to a.Bus. Call Close
// when the program has exited.
func New(ctx context.Context, a *app.App, opts ...Option) Model {
	o := options{startPath: routes.DashboardPath, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	components.InitStyles(a.Config.ColorScheme)

	ch, unsubscribe := a.Bus.Subscribe(events.DefaultBuffer)

	m := Model{
		ctx:         ctx,
		app:         a,
		keys:        a.Config.KeyMappings,
		logger:      o.logger,
		huhTheme:    huhforms.CreateTheme(a.Config.ColorScheme),
		UiState:     state.NewUIState(),
		Drag:        state.NewDragState(),
		Forms:       state.NewFormState(),
		Notices:     state.NewNotificationState(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:    viewport.New(),
		events:      ch,
		unsubscribe: unsubscribe,
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight))
	m.refreshUser()
	m.navigate(o.startPath)
	return m
}

// Init starts listening to the bus, plus the login form when the first page
// is the login page.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events)}
	if m.Forms.IsOpen() {
		cmds = append(cmds, m.Forms.Form.Init())
	}
	return tea.Batch(cmds...)
}

// Close ends the bus subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Route returns the page being shown.
func (m Model) Route() routes.Result {
	return m.UiState.Route()
}

// navigate resolves path against the sign-in gate and switches page. Any
// open form or drag is dropped.
func (m *Model) navigate(path string) tea.Cmd {
	r := routes.Resolve(path, m.app.Auth.IsAuthenticated())
	m.logger.Debug("Navigating", "path", path, "page", r.Page, "redirected", r.Redirected)

	m.Drag.Cancel()
	m.Forms.Reset()
	m.UiState.SetMode(state.NormalMode)
	m.UiState.SetRoute(r)

	switch r.Page {
	case routes.PageLogin:
		return m.openLoginForm()
	case routes.PageTaskDetail:
		m.viewport.GotoTop()
		m.refreshTaskDetail()
	case routes.PageBoard:
		m.clampBoardSelection()
	case routes.PageProjects:
		m.UiState.SetSelectedProject(m.UiState.SelectedProject(), len(m.app.Store.Projects()))
	}
	return nil
}

// refreshUser re-reads the display identity.
func (m *Model) refreshUser() {
	user, err := m.app.Auth.Identity(m.ctx)
	if err != nil {
		m.logger.Warn("Failed to read credentials", "error", err)
	}
	m.user = user
}

// currentProject returns the project of the board or task page.
func (m Model) currentProject() (models.Project, bool) {
	return m.app.Store.Project(m.UiState.Route().ProjectID)
}

// currentTask returns the task of the task page.
func (m Model) currentTask() (models.Task, bool) {
	task, ok := m.app.Store.Task(m.UiState.Route().TaskID)
	if !ok || task.ProjectID != m.UiState.Route().ProjectID {
		return models.Task{}, false
	}
	return task, true
}

// boardColumns groups the current project's tasks into the board columns.
func (m Model) boardColumns() []board.Column {
	return board.GroupByStatus(m.app.Store.TasksByProject(m.UiState.Route().ProjectID))
}

// selectedTask returns the task under the board cursor.
func (m Model) selectedTask() (models.Task, bool) {
	cols := m.boardColumns()
	col := m.UiState.SelectedColumn()
	if col >= len(cols) {
		return models.Task{}, false
	}
	tasks := cols[col].Tasks
	idx := m.UiState.SelectedTask()
	if idx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[idx], true
}

// selectedProject returns the project under the cursor of the projects page.
func (m Model) selectedProject() (models.Project, bool) {
	projects := m.app.Store.Projects()
	idx := m.UiState.SelectedProject()
	if idx >= len(projects) {
		return models.Project{}, false
	}
	return projects[idx], true
}

// clampBoardSelection keeps the board cursor on an existing card after the
// task list changed.
func (m *Model) clampBoardSelection() {
	cols := m.boardColumns()
	m.UiState.SetSelectedColumn(m.UiState.SelectedColumn(), len(cols))
	col := m.UiState.SelectedColumn()
	m.UiState.SetSelectedTask(m.UiState.SelectedTask(), len(cols[col].Tasks))
	m.UiState.EnsureTaskVisible(col, m.UiState.SelectedTask(), components.VisibleTasks(m.columnHeight()))
}

// selectTask puts the board cursor on taskID, wherever it is.
func (m *Model) selectTask(taskID string) {
	for ci, col := range m.boardColumns() {
		for ti, t := range col.Tasks {
			if t.ID == taskID {
				m.UiState.SetSelectedColumn(ci, len(board.Columns()))
				m.UiState.SetSelectedTask(ti, len(col.Tasks))
				m.UiState.EnsureTaskVisible(ci, ti, components.VisibleTasks(m.columnHeight()))
				return
			}
		}
	}
}

// refreshTaskDetail re-renders the description shown in the task page
// viewport.
func (m *Model) refreshTaskDetail() {
	m.resizeViewport()
	task, ok := m.currentTask()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(components.RenderDescription(task.Description, m.viewport.Width()))
}

// notify shows a transient notice and schedules its removal.
func (m *Model) notify(level state.NotificationLevel, message string) tea.Cmd {
	id := m.Notices.Add(level, message)
	return expireNotice(id)
}

// notifyError reports a failed operation. Validation failures read as the
// sentinel's message; anything else is logged too.
func (m *Model) notifyError(action string, err error) tea.Cmd {
	if !isValidation(err) {
		m.logger.Error("Operation failed", "action", action, "error", err)
	}
	return m.notify(state.LevelError, action+": "+err.Error())
}

// isValidation reports whether err is one of the field validation sentinels.
func isValidation(err error) bool {
	for _, target := range []error{
		store.ErrEmptyName,
		store.ErrEmptyTitle,
		store.ErrInvalidStatus,
		store.ErrInvalidPriority,
		store.ErrProjectNotFound,
		auth.ErrMissingFields,
		auth.ErrEmptyName,
		auth.ErrEmptyEmail,
		board.ErrAlreadyFirstColumn,
		board.ErrAlreadyLastColumn,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
