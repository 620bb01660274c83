// Package view holds the read-only overview commands: board and dashboard.
package view

import (
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// columnJSON is one board column as JSON output shows it
type columnJSON struct {
	ID    models.TaskStatus `json:"id"`
	Title string            `json:"title"`
	Tasks []models.Task     `json:"tasks"`
}
