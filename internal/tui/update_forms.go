package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/routes"
	"github.com/thenoetrevino/taskpilot/internal/tui/huhforms"
	"github.com/thenoetrevino/taskpilot/internal/tui/state"
)

// openForm themes form, sizes it and makes it own the keyboard.
func (m *Model) openForm(kind state.FormKind, form *huh.Form, targetID string) {
	form = form.WithTheme(m.huhTheme)
	if m.UiState.Width() > 0 {
		form = form.WithWidth(m.formWidth())
	}
	m.Forms.Open(kind, form, targetID)
	m.UiState.SetMode(state.FormMode)
}

func (m *Model) openLoginForm() tea.Cmd {
	values := &huhforms.LoginValues{}
	m.openForm(state.LoginForm, huhforms.CreateLoginForm(values), "")
	m.Forms.Login = values
	return m.Forms.Form.Init()
}

// openProjectForm opens the create form, or the edit form when p is set.
func (m *Model) openProjectForm(p *models.Project) tea.Cmd {
	values := &huhforms.ProjectValues{}
	kind, targetID := state.CreateProjectForm, ""
	if p != nil {
		values.Name = p.Name
		values.Description = p.Description
		kind, targetID = state.EditProjectForm, p.ID
	}
	m.openForm(kind, huhforms.CreateProjectForm(values, p != nil), targetID)
	m.Forms.Project = values
	return m.Forms.Form.Init()
}

func (m *Model) openDeleteProjectForm(p models.Project) tea.Cmd {
	count := len(m.app.Store.TasksByProject(p.ID))
	form := huhforms.CreateDeleteForm(
		fmt.Sprintf("Delete project '%s'?", p.Name),
		fmt.Sprintf("This also deletes its %d task(s).", count),
		&m.Forms.Confirm,
	)
	m.openForm(state.DeleteProjectForm, form, p.ID)
	return m.Forms.Form.Init()
}

// openTaskForm opens the create form in column status, or the edit form
// when t is set.
func (m *Model) openTaskForm(t *models.Task, status models.TaskStatus) tea.Cmd {
	values := huhforms.NewTaskValues(status)
	kind, targetID := state.CreateTaskForm, ""
	if t != nil {
		values = huhforms.TaskValuesFrom(*t)
		kind, targetID = state.EditTaskForm, t.ID
	}
	lines := max(m.UiState.Height()/4, 3)
	m.openForm(kind, huhforms.CreateTaskForm(values, lines), targetID)
	m.Forms.Task = values
	return m.Forms.Form.Init()
}

func (m *Model) openDeleteTaskForm(t models.Task) tea.Cmd {
	form := huhforms.CreateDeleteForm(
		fmt.Sprintf("Delete task '%s'?", t.Title),
		"This cannot be undone.",
		&m.Forms.Confirm,
	)
	m.openForm(state.DeleteTaskForm, form, t.ID)
	return m.Forms.Form.Init()
}

func (m *Model) openProfileForm() tea.Cmd {
	values := &huhforms.ProfileValues{Name: m.user.Name, Email: m.user.Email}
	m.openForm(state.ProfileForm, huhforms.CreateProfileForm(values), "")
	m.Forms.Profile = values
	return m.Forms.Form.Init()
}

// updateForm routes a message to the open form and acts on its outcome.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && matches(key, m.keys.SaveForm) {
		if m.Forms.ConfirmSave() {
			return m.submitForm()
		}
	}

	model, cmd := m.Forms.Form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		m.Forms.Form = form
	}

	switch m.Forms.Form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		return m.cancelForm()
	}
	return m, cmd
}

// cancelForm closes the form without saving. The login form cannot be left
// and starts over instead.
func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	if m.Forms.Kind == state.LoginForm {
		return m, m.openLoginForm()
	}
	m.closeForm()
	return m, nil
}

func (m *Model) closeForm() {
	m.Forms.Reset()
	m.UiState.SetMode(state.NormalMode)
}

// submitForm applies a completed form.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	forms := *m.Forms
	m.closeForm()

	switch forms.Kind {
	case state.LoginForm:
		return m, m.startSignIn(forms.Login)

	case state.CreateProjectForm:
		if !forms.Project.Confirm {
			return m, nil
		}
		p, err := m.app.Store.AddProject(m.ctx, models.NewProject{
			Name:        strings.TrimSpace(forms.Project.Name),
			Description: strings.TrimSpace(forms.Project.Description),
			OwnerID:     m.user.ID,
		})
		if err != nil {
			return m, m.notifyError("Create project failed", err)
		}
		m.selectProject(p.ID)
		return m, m.notify(state.LevelInfo, fmt.Sprintf("Project '%s' created", p.Name))

	case state.EditProjectForm:
		if !forms.Project.Confirm {
			return m, nil
		}
		name := strings.TrimSpace(forms.Project.Name)
		description := strings.TrimSpace(forms.Project.Description)
		err := m.app.Store.UpdateProject(m.ctx, forms.TargetID, models.ProjectPatch{
			Name:        &name,
			Description: &description,
		})
		if err != nil {
			return m, m.notifyError("Update project failed", err)
		}
		return m, m.notify(state.LevelInfo, fmt.Sprintf("Project '%s' updated", name))

	case state.DeleteProjectForm:
		if !forms.Confirm {
			return m, nil
		}
		if err := m.app.Store.DeleteProject(m.ctx, forms.TargetID); err != nil {
			return m, m.notifyError("Delete project failed", err)
		}
		var cmd tea.Cmd
		if m.UiState.Route().ProjectID == forms.TargetID {
			cmd = m.navigate(routes.ProjectsPath)
		}
		m.UiState.SetSelectedProject(m.UiState.SelectedProject(), len(m.app.Store.Projects()))
		return m, tea.Batch(cmd, m.notify(state.LevelInfo, "Project deleted"))

	case state.CreateTaskForm, state.EditTaskForm:
		return m, m.saveTask(forms)

	case state.DeleteTaskForm:
		if !forms.Confirm {
			return m, nil
		}
		if err := m.app.Store.DeleteTask(m.ctx, forms.TargetID); err != nil {
			return m, m.notifyError("Delete task failed", err)
		}
		var cmd tea.Cmd
		route := m.UiState.Route()
		if route.Page == routes.PageTaskDetail && route.TaskID == forms.TargetID {
			cmd = m.navigate(routes.ProjectPath(route.ProjectID))
		} else {
			m.clampBoardSelection()
		}
		return m, tea.Batch(cmd, m.notify(state.LevelInfo, "Task deleted"))

	case state.ProfileForm:
		if !forms.Profile.Confirm {
			return m, nil
		}
		err := m.app.Auth.SaveProfile(m.ctx, auth.ProfileRequest{
			Name:  forms.Profile.Name,
			Email: forms.Profile.Email,
		})
		if err != nil {
			return m, m.notifyError("Save profile failed", err)
		}
		m.refreshUser()
		return m, m.notify(state.LevelInfo, "Profile saved")
	}

	return m, nil
}

// saveTask creates or updates the task described by a completed task form.
func (m *Model) saveTask(forms state.FormState) tea.Cmd {
	v := forms.Task
	if !v.Confirm {
		return nil
	}

	due, err := huhforms.ParseDate(v.DueDate)
	if err != nil {
		return m.notifyError("Invalid due date", err)
	}
	status, err := models.ParseTaskStatus(v.Status)
	if err != nil {
		return m.notifyError("Save task failed", err)
	}
	priority, err := models.ParseTaskPriority(v.Priority)
	if err != nil {
		return m.notifyError("Save task failed", err)
	}
	title := strings.TrimSpace(v.Title)
	assignee := strings.TrimSpace(v.Assignee)

	if forms.Kind == state.CreateTaskForm {
		t, err := m.app.Store.AddTask(m.ctx, models.NewTask{
			Title:       title,
			Description: v.Description,
			Status:      status,
			Priority:    priority,
			ProjectID:   m.UiState.Route().ProjectID,
			AssigneeID:  assignee,
			DueDate:     due,
		})
		if err != nil {
			return m.notifyError("Create task failed", err)
		}
		m.selectTask(t.ID)
		return m.notify(state.LevelInfo, fmt.Sprintf("Task '%s' created", t.Title))
	}

	patch := models.TaskPatch{
		Title:       &title,
		Description: &v.Description,
		Status:      &status,
		Priority:    &priority,
	}
	if due == nil {
		patch.ClearDueDate = true
	} else {
		patch.DueDate = due
	}
	if assignee == "" {
		patch.ClearAssignee = true
	} else {
		patch.AssigneeID = &assignee
	}

	if err := m.app.Store.UpdateTask(m.ctx, forms.TargetID, patch); err != nil {
		return m.notifyError("Update task failed", err)
	}
	switch m.UiState.Page() {
	case routes.PageBoard:
		m.selectTask(forms.TargetID)
	case routes.PageTaskDetail:
		m.refreshTaskDetail()
	}
	return m.notify(state.LevelInfo, fmt.Sprintf("Task '%s' updated", title))
}

// selectProject puts the projects page cursor on id.
func (m *Model) selectProject(id string) {
	projects := m.app.Store.Projects()
	for i, p := range projects {
		if p.ID == id {
			m.UiState.SetSelectedProject(i, len(projects))
			return
		}
	}
}

// startSignIn shows the spinner for the configured delay, then signs in.
func (m *Model) startSignIn(v *huhforms.LoginValues) tea.Cmd {
	m.signingIn = true
	req := auth.SignInRequest{Name: v.Name, Email: v.Email, Password: v.Password}
	ctx, session := m.ctx, m.app.Auth

	signIn := tea.Tick(m.app.Config.Auth.SignInDelay, func(time.Time) tea.Msg {
		return signInDoneMsg{err: session.SignIn(ctx, req)}
	})
	return tea.Batch(m.spinner.Tick, signIn)
}
