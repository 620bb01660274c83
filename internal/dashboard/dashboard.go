// Package dashboard aggregates projects and tasks into the numbers shown on
// the dashboard page.
package dashboard

import "github.com/thenoetrevino/taskpilot/internal/models"

// MaxProjectNameLen is the label length of a project bar before truncation
const MaxProjectNameLen = 15

// Chart colors, shared by the TUI and JSON output
const (
	ColorCompleted  = "#10b981"
	ColorInProgress = "#f59e0b"
	ColorTodo       = "#6b7280"
	ColorProjectBar = "#3b82f6"
)

// StatusSlice is one wedge of the status distribution
type StatusSlice struct {
	Name   string            `json:"name"`
	Status models.TaskStatus `json:"status"`
	Value  int               `json:"value"`
	Color  string            `json:"color"`
}

// ProjectLoad is the task count of one project
type ProjectLoad struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Tasks     int    `json:"tasks"`
}

// Stats is everything the dashboard shows
type Stats struct {
	TotalProjects   int           `json:"totalProjects"`
	TotalTasks      int           `json:"totalTasks"`
	CompletedTasks  int           `json:"completedTasks"`
	InProgressTasks int           `json:"inProgressTasks"`
	TodoTasks       int           `json:"todoTasks"`
	StatusSlices    []StatusSlice `json:"statusSlices"`
	ProjectLoads    []ProjectLoad `json:"projectLoads"`
}

// HasTasks reports whether there is anything to chart.
func (s Stats) HasTasks() bool {
	return s.TotalTasks > 0
}

// CompletionRate is the share of tasks done, in [0, 1].
func (s Stats) CompletionRate() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks)
}

// Compute builds the dashboard from store snapshots.
func Compute(projects []models.Project, tasks []models.Task) Stats {
	stats := Stats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
		StatusSlices:  []StatusSlice{},
		ProjectLoads:  []ProjectLoad{},
	}

	perProject := make(map[string]int, len(projects))
	for _, t := range tasks {
		switch t.Status {
		case models.StatusDone:
			stats.CompletedTasks++
		case models.StatusInProgress:
			stats.InProgressTasks++
		case models.StatusTodo:
			stats.TodoTasks++
		}
		perProject[t.ProjectID]++
	}

	slices := []StatusSlice{
		{Name: "Completed", Status: models.StatusDone, Value: stats.CompletedTasks, Color: ColorCompleted},
		{Name: "In Progress", Status: models.StatusInProgress, Value: stats.InProgressTasks, Color: ColorInProgress},
		{Name: "To Do", Status: models.StatusTodo, Value: stats.TodoTasks, Color: ColorTodo},
	}
	for _, s := range slices {
		if s.Value > 0 {
			stats.StatusSlices = append(stats.StatusSlices, s)
		}
	}

	for _, p := range projects {
		if n := perProject[p.ID]; n > 0 {
			stats.ProjectLoads = append(stats.ProjectLoads, ProjectLoad{
				ProjectID: p.ID,
				Name:      TruncateName(p.Name),
				Tasks:     n,
			})
		}
	}

	return stats
}

// TruncateName shortens names longer than MaxProjectNameLen runes.
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxProjectNameLen {
		return name
	}
	return string(runes[:MaxProjectNameLen]) + "..."
}
