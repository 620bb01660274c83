package project

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project and its tasks",
		Long:  "Delete a project by ID together with all of its tasks (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	// Required flags
	cmd.Flags().String("id", "", "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")
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

	// Get project details for confirmation
	project, err := lookup(cliInstance, projectID)
	if err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}
	taskCount := len(cliInstance.App.Store.TasksByProject(project.ID))

	// Ask for confirmation unless force, quiet or JSON mode
	if !force && !formatter.Quiet && !formatter.JSON {
		prompt := fmt.Sprintf("Delete project '%s' and its %d task(s)?", project.Name, taskCount)
		if !cli.Confirm(cmd.InOrStdin(), os.Stdout, prompt) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.Store.DeleteProject(ctx, projectID); err != nil {
		return cli.Fail(formatter, err, "")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return formatter.Result("deleted", map[string]any{
			"projectId": projectID,
			"tasks":     taskCount,
		})
	}

	fmt.Printf("✓ Project %s deleted successfully (%d task(s) removed)\n", projectID, taskCount)
	return nil
}
