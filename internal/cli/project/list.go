package project

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects in creation order with their task counts.",
		RunE:  runList,
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

// listEntry is a project with its task count
type listEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tasks       int    `json:"tasks"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	defer func() {
		if err := cliInstance.Close(ctx); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	projects := cliInstance.App.Store.Projects()

	// Output in appropriate format
	if formatter.Quiet {
		// Just print IDs (one per line)
		for _, p := range projects {
			fmt.Println(p.ID)
		}
		return nil
	}

	entries := make([]listEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, listEntry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Tasks:       len(cliInstance.App.Store.TasksByProject(p.ID)),
		})
	}

	if formatter.JSON {
		return formatter.Result("projects", entries)
	}

	// Human-readable output
	if len(entries) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Found %d project(s):\n\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s  %s (%d task(s))\n", e.ID, e.Name, e.Tasks)
		if e.Description != "" {
			fmt.Printf("      %s\n", e.Description)
		}
	}

	return nil
}
