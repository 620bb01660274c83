package project

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project with specified attributes.

Examples:
  # Simple project (human-readable output)
  taskpilot project create --name="Backend API"

  # JSON output for agents
  taskpilot project create --name="Backend API" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(taskpilot project create --name="Backend API" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("owner", "", "Owner user ID (defaults to the signed-in user)")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	owner, _ := cmd.Flags().GetString("owner")

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

	if owner == "" {
		user, err := cliInstance.App.Auth.Identity(ctx)
		if err != nil {
			return cli.Fail(formatter, err, "")
		}
		owner = user.ID
	}

	project, err := cliInstance.App.Store.AddProject(ctx, models.NewProject{
		Name:        name,
		Description: description,
		OwnerID:     owner,
	})
	if err != nil {
		return cli.Fail(formatter, err, "")
	}

	// Output based on mode (JSON/Quiet/Human)
	if formatter.Quiet {
		fmt.Println(project.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("project", project)
	}

	// Human-readable output
	fmt.Printf("✓ Project '%s' created successfully (ID: %s)\n", project.Name, project.ID)
	if project.Description != "" {
		fmt.Printf("  Description: %s\n", project.Description)
	}

	return nil
}
