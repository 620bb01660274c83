// Package cmd assembles the taskpilot command tree.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/cli/account"
	"github.com/thenoetrevino/taskpilot/internal/cli/project"
	"github.com/thenoetrevino/taskpilot/internal/cli/task"
	"github.com/thenoetrevino/taskpilot/internal/cli/view"
	"github.com/thenoetrevino/taskpilot/internal/launcher"
	"github.com/thenoetrevino/taskpilot/internal/routes"
)

// NewRootCmd builds the taskpilot root command. Run without a subcommand it
// opens the TUI.
func NewRootCmd() *cobra.Command {
	var sessionID string

	rootCmd := &cobra.Command{
		Use:   "taskpilot",
		Short: "TaskPilot - projects and kanban boards in the terminal",
		Long: `TaskPilot tracks projects and their tasks on a three column kanban board
(To Do, In Progress, Done).

Run it without arguments to open the interactive board, or use the
subcommands to script it.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(cli.WithSession(cmd.Context(), sessionID))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context(), launcher.Options{SessionID: sessionID})
		},
	}

	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "",
		"session scope for sign-in state and cached credentials")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	})

	rootCmd.AddCommand(
		project.ProjectCmd(),
		task.TaskCmd(),
		view.BoardCmd(),
		view.DashboardCmd(),
		account.LoginCmd(),
		account.LogoutCmd(),
		account.WhoamiCmd(),
		account.ProfileCmd(),
		openCmd(&sessionID),
	)
	return rootCmd
}

// openCmd opens the TUI at a route such as /projects/<id>.
func openCmd(sessionID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open [route]",
		Short: "Open the interactive board at a route",
		Long: `Open the interactive board at a route.

Routes:
  /login                        sign in
  /dashboard                    dashboard
  /projects                     projects
  /projects/<id>                board of one project
  /projects/<id>/tasks/<task>   one task
  /profile                      profile

Signed-out sessions always land on the sign-in page; unknown routes fall
back to the dashboard.`,
		Example: "  taskpilot open " + routes.ProjectsPath,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := routes.DashboardPath
			if len(args) == 1 {
				start = args[0]
			}
			return launcher.Launch(cmd.Context(), launcher.Options{
				SessionID: *sessionID,
				StartPath: start,
			})
		},
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
