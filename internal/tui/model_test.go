package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/testutil"
	"github.com/thenoetrevino/taskpilot/internal/tui/huhforms"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
)

// newSignedInApp returns a test app with a signed-in session.
func newSignedInApp(t *testing.T) *app.App {
	t.Helper()
	a := testutil.NewTestApp(t)
	err := a.Auth.SignIn(context.Background(), auth.SignInRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret",
	})
	require.NoError(t, err)
	return a
}

// newModel builds a model sized like a normal terminal.
func newModel(t *testing.T, a *app.App, opts ...Option) Model {
	t.Helper()
	m := New(context.Background(), a, opts...)
	t.Cleanup(m.Close)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// update feeds one message to the model and returns the new model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model
}

// press feeds a sequence of key presses.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyPress(k))
	}
	return m
}

func keyPress(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

func addProject(t *testing.T, a *app.App, name string) models.Project {
	t.Helper()
	p, err := a.Store.AddProject(context.Background(), models.NewProject{Name: name, OwnerID: "1"})
	require.NoError(t, err)
	return p
}

func addTask(t *testing.T, a *app.App, projectID, title string, status models.TaskStatus) models.Task {
	t.Helper()
	task, err := a.Store.AddTask(context.Background(), models.NewTask{
		Title: title, ProjectID: projectID, Status: status, Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return task
}

func taskStatus(t *testing.T, a *app.App, id string) models.TaskStatus {
	t.Helper()
	task, ok := a.Store.Task(id)
	require.True(t, ok, "task %s missing", id)
	return task.Status
}

func TestNew_SignedOutStartsOnLogin(t *testing.T) {
	a := testutil.NewTestApp(t)
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	assert.Equal(t, routes.PageLogin, m.Route().Page)
	assert.True(t, m.Route().Redirected)
	assert.Equal(t, state.LoginForm, m.Forms.Kind)
	assert.Equal(t, state.FormMode, m.UiState.Mode())
}

func TestNew_StartPathWhenSignedIn(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")

	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))
	assert.Equal(t, routes.PageBoard, m.Route().Page)
	assert.Equal(t, p.ID, m.Route().ProjectID)

	m = newModel(t, a, WithStartPath("/nowhere"))
	assert.Equal(t, routes.PageDashboard, m.Route().Page)
}

func TestSignIn_StartsSpinnerAndFinishes(t *testing.T) {
	a := testutil.NewTestApp(t)
	m := newModel(t, a)

	m.Forms.Login.Name = "Ada"
	m.Forms.Login.Email = "ada@example.com"
	m.Forms.Login.Password = "secret"
	next, cmd := m.submitForm()
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.signingIn)
	assert.Contains(t, m.View().Content, "Signing in...")

	// Keys are ignored while the spinner runs.
	m = press(t, m, "2")
	assert.Equal(t, routes.PageLogin, m.Route().Page)

	require.NoError(t, a.Auth.SignIn(context.Background(), auth.SignInRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret",
	}))
	m = update(t, m, signInDoneMsg{})

	assert.False(t, m.signingIn)
	assert.Equal(t, routes.PageDashboard, m.Route().Page)
	assert.Equal(t, "Ada", m.user.Name)
	assert.Contains(t, m.Notices.All()[0].Message, "Welcome, Ada")
}

func TestSignIn_ErrorReopensForm(t *testing.T) {
	a := testutil.NewTestApp(t)
	m := newModel(t, a)
	m.signingIn = true

	m = update(t, m, signInDoneMsg{err: auth.ErrMissingFields})

	assert.Equal(t, routes.PageLogin, m.Route().Page)
	assert.Equal(t, state.LoginForm, m.Forms.Kind)
	require.Len(t, m.Notices.All(), 1)
	assert.Equal(t, state.LevelError, m.Notices.All()[0].Level)
	assert.False(t, a.Auth.IsAuthenticated())
}

func TestNavigationKeys(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	m := newModel(t, a)

	m = press(t, m, "2")
	assert.Equal(t, routes.PageProjects, m.Route().Page)

	m = press(t, m, "enter")
	assert.Equal(t, routes.PageBoard, m.Route().Page)
	assert.Equal(t, p.ID, m.Route().ProjectID)

	m = press(t, m, "esc")
	assert.Equal(t, routes.PageProjects, m.Route().Page)

	m = press(t, m, "3")
	assert.Equal(t, routes.PageProfile, m.Route().Page)

	m = press(t, m, "1")
	assert.Equal(t, routes.PageDashboard, m.Route().Page)
}

func TestBoard_DragAndDrop(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Write copy", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "space")
	require.True(t, m.Drag.Active())
	assert.Equal(t, task.ID, m.Drag.TaskID())

	// Carrying changes nothing until the drop.
	m = press(t, m, "l", "l")
	assert.Equal(t, 2, m.Drag.Target())
	assert.Equal(t, models.StatusTodo, taskStatus(t, a, task.ID))

	m = press(t, m, "h", "space")
	assert.False(t, m.Drag.Active())
	assert.Equal(t, models.StatusInProgress, taskStatus(t, a, task.ID))
	assert.Equal(t, 1, m.UiState.SelectedColumn(), "cursor follows the dropped card")
}

func TestBoard_DropWithEnter(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Write copy", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "space", "l", "l", "enter")
	assert.Equal(t, models.StatusDone, taskStatus(t, a, task.ID))
	assert.Equal(t, routes.PageBoard, m.Route().Page, "enter drops instead of opening the task")
}

func TestBoard_CancelDrag(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Write copy", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "space", "l", "esc")
	assert.False(t, m.Drag.Active())
	assert.Equal(t, models.StatusTodo, taskStatus(t, a, task.ID))
	assert.Equal(t, routes.PageBoard, m.Route().Page, "esc cancels the drag before leaving the board")
}

func TestBoard_DragRendersCardInTargetColumn(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	addTask(t, a, p.ID, "Write copy", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "space", "l")
	content := m.View().Content
	assert.Contains(t, content, "To Do (0)")
	assert.Contains(t, content, "In Progress (1)")
}

func TestBoard_MoveKeys(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Write copy", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "L")
	assert.Equal(t, models.StatusInProgress, taskStatus(t, a, task.ID))

	m = press(t, m, "H", "H")
	assert.Equal(t, models.StatusTodo, taskStatus(t, a, task.ID))
	notices := m.Notices.All()
	require.NotEmpty(t, notices)
	assert.Equal(t, state.LevelError, notices[len(notices)-1].Level, "moving past the first column is reported")
}

func TestBoard_OpenTask(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	addTask(t, a, p.ID, "First", models.StatusInProgress)
	second := addTask(t, a, p.ID, "Second", models.StatusInProgress)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "l", "j", "enter")
	assert.Equal(t, routes.PageTaskDetail, m.Route().Page)
	assert.Equal(t, second.ID, m.Route().TaskID)

	m = press(t, m, "esc")
	assert.Equal(t, routes.PageBoard, m.Route().Page)
}

func TestSubmitForm_CreateProject(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	m = press(t, m, "n")
	require.Equal(t, state.CreateProjectForm, m.Forms.Kind)
	m.Forms.Project.Name = "  Launch  "
	m.Forms.Project.Confirm = true

	next, _ := m.submitForm()
	m = next.(Model)

	projects := a.Store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].Name)
	assert.Equal(t, "1", projects[0].OwnerID)
	assert.False(t, m.Forms.IsOpen())
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

func TestSaveFormKey_SubmitsEditingForm(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	m = press(t, m, "n")
	require.Equal(t, state.CreateProjectForm, m.Forms.Kind)
	m.Forms.Project.Name = "Launch"

	m = update(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	projects := a.Store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].Name)
	assert.False(t, m.Forms.IsOpen())
}

func TestSaveFormKey_DoesNotConfirmDelete(t *testing.T) {
	a := newSignedInApp(t)
	addProject(t, a, "Website")
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	m = press(t, m, "x")
	require.Equal(t, state.DeleteProjectForm, m.Forms.Kind)

	m = update(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})

	assert.Len(t, a.Store.Projects(), 1)
	assert.False(t, m.Forms.Confirm)
}

func TestSubmitForm_DeclinedConfirmSavesNothing(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	m = press(t, m, "n")
	m.Forms.Project.Name = "Launch"
	next, _ := m.submitForm()
	m = next.(Model)

	assert.Empty(t, a.Store.Projects())
	assert.False(t, m.Forms.IsOpen())
}

func TestSubmitForm_CreateTaskInSelectedColumn(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "l", "l", "a")
	require.Equal(t, state.CreateTaskForm, m.Forms.Kind)
	assert.Equal(t, string(models.StatusDone), m.Forms.Task.Status)

	m.Forms.Task.Title = "Release notes"
	m.Forms.Task.DueDate = "2026-12-01"
	m.Forms.Task.Confirm = true
	next, _ := m.submitForm()
	m = next.(Model)

	tasks := a.Store.TasksByProject(p.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusDone, tasks[0].Status)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2026-12-01", tasks[0].DueDate.Format(huhforms.DateLayout))
}

func TestSubmitForm_EditTaskClearsOptionalFields(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Draft", models.StatusTodo)
	assignee := "2"
	require.NoError(t, a.Store.UpdateTask(context.Background(), task.ID, models.TaskPatch{AssigneeID: &assignee}))
	m := newModel(t, a, WithStartPath(routes.TaskPath(p.ID, task.ID)))

	m = press(t, m, "e")
	require.Equal(t, state.EditTaskForm, m.Forms.Kind)
	assert.Equal(t, "2", m.Forms.Task.Assignee)

	m.Forms.Task.Title = "Final"
	m.Forms.Task.Assignee = ""
	m.Forms.Task.Confirm = true
	next, _ := m.submitForm()
	m = next.(Model)

	got, _ := a.Store.Task(task.ID)
	assert.Equal(t, "Final", got.Title)
	assert.Empty(t, got.AssigneeID)
	assert.Equal(t, routes.PageTaskDetail, m.Route().Page)
}

func TestSubmitForm_EmptyTitleIsReported(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "a")
	m.Forms.Task.Title = "   "
	m.Forms.Task.Confirm = true
	next, _ := m.submitForm()
	m = next.(Model)

	assert.Empty(t, a.Store.TasksByProject(p.ID))
	require.Len(t, m.Notices.All(), 1)
	assert.Equal(t, state.LevelError, m.Notices.All()[0].Level)
}

func TestSubmitForm_DeleteTaskFromDetailReturnsToBoard(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Draft", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.TaskPath(p.ID, task.ID)))

	m = press(t, m, "d")
	require.Equal(t, state.DeleteTaskForm, m.Forms.Kind)
	m.Forms.Confirm = true
	next, _ := m.submitForm()
	m = next.(Model)

	_, ok := a.Store.Task(task.ID)
	assert.False(t, ok)
	assert.Equal(t, routes.PageBoard, m.Route().Page)
}

func TestSubmitForm_DeleteProject(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	addTask(t, a, p.ID, "Draft", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectsPath))

	m = press(t, m, "x")
	require.Equal(t, state.DeleteProjectForm, m.Forms.Kind)
	m.Forms.Confirm = true
	next, _ := m.submitForm()
	_ = next.(Model)

	assert.Empty(t, a.Store.Projects())
	assert.Empty(t, a.Store.Tasks())
}

func TestSubmitForm_Profile(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a, WithStartPath(routes.ProfilePath))

	m = press(t, m, "e")
	require.Equal(t, state.ProfileForm, m.Forms.Kind)
	assert.Equal(t, "Ada", m.Forms.Profile.Name)

	m.Forms.Profile.Name = "Grace"
	m.Forms.Profile.Confirm = true
	next, _ := m.submitForm()
	m = next.(Model)

	assert.Equal(t, "Grace", m.user.Name)
	user, err := a.Auth.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)
}

func TestProfile_SignOut(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a, WithStartPath(routes.ProfilePath))

	m = press(t, m, "o")
	assert.False(t, a.Auth.IsAuthenticated())
	assert.Equal(t, routes.PageLogin, m.Route().Page)
	assert.Equal(t, state.LoginForm, m.Forms.Kind)
}

func TestStoreEvent_DeletedTaskLeavesDetailPage(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Draft", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.TaskPath(p.ID, task.ID)))

	require.NoError(t, a.Store.DeleteTask(context.Background(), task.ID))
	m = update(t, m, storeEventMsg{Type: events.TasksChanged, EntityID: task.ID})

	assert.Equal(t, routes.PageBoard, m.Route().Page)
	assert.Equal(t, p.ID, m.Route().ProjectID)
}

func TestStoreEvent_DeletedProjectLeavesBoard(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	require.NoError(t, a.Store.DeleteProject(context.Background(), p.ID))
	m = update(t, m, storeEventMsg{Type: events.ProjectsChanged, EntityID: p.ID})

	assert.Equal(t, routes.PageProjects, m.Route().Page)
}

func TestStoreEvent_SignOutElsewhere(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a)

	require.NoError(t, a.Auth.Logout(context.Background()))
	m = update(t, m, storeEventMsg{Type: events.AuthChanged})

	assert.Equal(t, routes.PageLogin, m.Route().Page)
}

func TestStoreEvent_CarriedTaskDeleted(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Draft", models.StatusTodo)
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "space")
	require.NoError(t, a.Store.DeleteTask(context.Background(), task.ID))
	m = update(t, m, storeEventMsg{Type: events.TasksChanged, EntityID: task.ID})

	assert.False(t, m.Drag.Active())
}

func TestNoticeExpires(t *testing.T) {
	a := newSignedInApp(t)
	m := newModel(t, a)

	m.notify(state.LevelInfo, "saved")
	id := m.Notices.All()[0].ID
	assert.Contains(t, m.View().Content, "saved")

	m = update(t, m, noticeExpiredMsg{id: id})
	assert.False(t, m.Notices.HasAny())
}

func TestHelpToggle(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	m := newModel(t, a, WithStartPath(routes.ProjectPath(p.ID)))

	m = press(t, m, "?")
	assert.Equal(t, state.HelpMode, m.UiState.Mode())
	assert.Contains(t, m.View().Content, "pick up task")

	// Keys other than the close keys are swallowed by help.
	m = press(t, m, "2")
	assert.Equal(t, routes.PageBoard, m.Route().Page)

	m = press(t, m, "?")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

func TestView_Pages(t *testing.T) {
	a := newSignedInApp(t)
	p := addProject(t, a, "Website")
	task := addTask(t, a, p.ID, "Draft", models.StatusDone)

	cases := map[string]string{
		routes.DashboardPath:           "Welcome back, Ada",
		routes.ProjectsPath:            "Projects (1)",
		routes.ProjectPath(p.ID):       "Done (1)",
		routes.TaskPath(p.ID, task.ID): "No description",
		routes.ProfilePath:             "ada@example.com",
		routes.ProjectPath("missing"):  "Project not found",
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			m := newModel(t, a, WithStartPath(path))
			assert.Contains(t, m.View().Content, want)
		})
	}
}

func TestView_LoadingBeforeWindowSize(t *testing.T) {
	a := newSignedInApp(t)
	m := New(context.Background(), a)
	defer m.Close()

	v := m.View()
	assert.Equal(t, "Loading...", v.Content)
	assert.True(t, v.AltScreen)
}
