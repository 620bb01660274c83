package account

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in with a display name, email and password.

Any non-empty values are accepted. Name and email become the identity of
the session; the password is only kept as a hash. Without --password the
password is prompted for without echo.

Examples:
  taskpilot login --name="Jane Doe" --email=jane@example.com
  taskpilot --session=work login --name=Jane --email=jane@work.example --password=secret
`,
		RunE: runLogin,
	}

	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "No output on success")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	formatter := cli.FormatterFromFlags(cmd)

	if !cmd.Flags().Changed("password") && !formatter.JSON && !formatter.Quiet {
		pw, err := promptPassword(cmd.InOrStdin(), os.Stdout)
		if err != nil {
			return cli.Fail(formatter, fmt.Errorf("failed to read password: %w", err), "")
		}
		password = pw
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

	err = cliInstance.App.Auth.SignIn(ctx, auth.SignInRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return cli.Fail(formatter, err, "Pass --name, --email and --password")
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

	fmt.Printf("✓ Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}
