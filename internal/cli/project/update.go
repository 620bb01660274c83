package project

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a project",
		Long:  "Update project name or description.",
		RunE:  runUpdate,
	}

	// Required flags
	cmd.Flags().String("id", "", "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional update flags
	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New project description")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetString("id")
	formatter := cli.FormatterFromFlags(cmd)

	// At least one update field must be provided
	var patch models.ProjectPatch
	if name, ok := cli.StringFlag(cmd, "name"); ok {
		patch.Name = &name
	}
	if description, ok := cli.StringFlag(cmd, "description"); ok {
		patch.Description = &description
	}
	if patch.IsEmpty() {
		return cli.Fail(formatter,
			fmt.Errorf("%w: at least one of --name or --description must be specified", cli.ErrNoUpdates), "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	defer func() {
		if err := cliInstance.Close(ctx); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	if _, err := lookup(cliInstance, projectID); err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}

	if err := cliInstance.App.Store.UpdateProject(ctx, projectID, patch); err != nil {
		return cli.Fail(formatter, err, "")
	}
	project, _ := cliInstance.App.Store.Project(projectID)

	if formatter.Quiet {
		fmt.Println(project.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("project", project)
	}

	fmt.Printf("✓ Project %s updated successfully\n", project.ID)
	fmt.Printf("  Name: %s\n", project.Name)
	if project.Description != "" {
		fmt.Printf("  Description: %s\n", project.Description)
	}
	return nil
}
