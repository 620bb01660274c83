package account

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

// ProfileCmd returns the profile parent command
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the session profile",
	}

	cmd.AddCommand(SetCmd())

	return cmd
}

// SetCmd returns the profile set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the display name or email",
		Long: `Change the display name and email of the current session.
A flag left out keeps its current value.`,
		RunE: runSet,
	}

	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().String("email", "", "New email address")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "No output on success")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	name, nameSet := cli.StringFlag(cmd, "name")
	email, emailSet := cli.StringFlag(cmd, "email")
	if !nameSet && !emailSet {
		return cli.Fail(formatter,
			fmt.Errorf("%w: at least one of --name or --email must be specified", cli.ErrNoUpdates), "")
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

	current, err := cliInstance.App.Auth.User(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}
	if current == nil {
		return cli.Fail(formatter, cli.ErrNotSignedIn, "Run 'taskpilot login'")
	}
	if !nameSet {
		name = current.Name
	}
	if !emailSet {
		email = current.Email
	}

	if err := cliInstance.App.Auth.SaveProfile(ctx, auth.ProfileRequest{Name: name, Email: email}); err != nil {
		return cli.Fail(formatter, err, "")
	}
	user, err := cliInstance.App.Auth.Identity(ctx)
	if err != nil {
		return cli.Fail(formatter, err, "")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return formatter.Result("user", user)
	}

	fmt.Printf("✓ Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
