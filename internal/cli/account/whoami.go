package account

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE:  runWhoami,
	}

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (user ID only)")

	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
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

	user, err := cliInstance.App.Auth.User(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	if user == nil {
		return cli.Fail(formatter, cli.ErrNotSignedIn, "Run 'taskpilot login'")
	}

	if formatter.Quiet {
		fmt.Println(user.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("user", struct {
			models.User
			Session string `json:"session"`
		}{*user, cliInstance.App.SessionID()})
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("  ID: %s\n", user.ID)
	if session := cliInstance.App.SessionID(); session != "" {
		fmt.Printf("  Session: %s\n", session)
	}
	return nil
}
