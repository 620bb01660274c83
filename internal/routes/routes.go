// Package routes maps location paths to pages and applies the sign-in gate.
package routes

import (
	"net/url"
	"strings"
)

// Page identifies a screen of the application
type Page string

const (
	PageLogin      Page = "login"
	PageDashboard  Page = "dashboard"
	PageProjects   Page = "projects"
	PageBoard      Page = "board"
	PageTaskDetail Page = "task"
	PageProfile    Page = "profile"
)

// Canonical paths
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	ProjectsPath  = "/projects"
	ProfilePath   = "/profile"
)

// Result is where a path leads
type Result struct {
	Page      Page
	Path      string // canonical path of the page actually shown
	ProjectID string
	TaskID    string
	// Redirected is set when Path differs from the requested route
	Redirected bool
}

// Resolve maps path to a page. Signed-out visitors are sent to the login
// page from everywhere else; unknown paths (and "/") go to the dashboard.
func Resolve(path string, authenticated bool) Result {
	segments := split(path)

	if len(segments) == 1 && segments[0] == "login" {
		return Result{Page: PageLogin, Path: LoginPath}
	}
	if !authenticated {
		return Result{Page: PageLogin, Path: LoginPath, Redirected: true}
	}

	switch {
	case len(segments) == 1 && segments[0] == "dashboard":
		return Result{Page: PageDashboard, Path: DashboardPath}
	case len(segments) == 1 && segments[0] == "profile":
		return Result{Page: PageProfile, Path: ProfilePath}
	case len(segments) == 1 && segments[0] == "projects":
		return Result{Page: PageProjects, Path: ProjectsPath}
	case len(segments) == 2 && segments[0] == "projects":
		return Result{Page: PageBoard, Path: ProjectPath(segments[1]), ProjectID: segments[1]}
	case len(segments) == 4 && segments[0] == "projects" && segments[2] == "tasks":
		return Result{
			Page:      PageTaskDetail,
			Path:      TaskPath(segments[1], segments[3]),
			ProjectID: segments[1],
			TaskID:    segments[3],
		}
	}
	return Result{Page: PageDashboard, Path: DashboardPath, Redirected: true}
}

// ProjectPath is the board route of a project.
func ProjectPath(projectID string) string {
	return ProjectsPath + "/" + url.PathEscape(projectID)
}

// TaskPath is the detail route of a task.
func TaskPath(projectID, taskID string) string {
	return ProjectPath(projectID) + "/tasks/" + url.PathEscape(taskID)
}

// split breaks path into unescaped, non-empty segments. A query or
// fragment is ignored.
func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(s); err == nil {
			s = unescaped
		}
		segments = append(segments, s)
	}
	return segments
}
