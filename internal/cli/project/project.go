// Package project holds all cli commands related to projects
//
// e.g., taskpilot project ...
package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// lookup finds a project or reports it as not found.
func lookup(c *cli.CLI, id string) (models.Project, error) {
	p, ok := c.App.Store.Project(id)
	if !ok {
		return models.Project{}, fmt.Errorf("project %q %w", id, cli.ErrNotFound)
	}
	return p, nil
}

const listSuggestion = "Run 'taskpilot project list' to see project IDs"
