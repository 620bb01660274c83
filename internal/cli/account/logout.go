package account

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE:  runLogout,
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "No output on success")

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
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

	if err := cliInstance.App.Auth.Logout(ctx); err != nil {
		return cli.Fail(formatter, err, "")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return formatter.Result("authenticated", false)
	}

	fmt.Println("✓ Signed out")
	return nil
}
