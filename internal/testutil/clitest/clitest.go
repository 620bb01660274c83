// Package clitest runs cobra commands against an in-memory App.
// It is separate from testutil so that cli tests can import it without
// testutil depending on the cli package.
package clitest

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskpilot/internal/app"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/testutil"
)

// SetupCLITest creates an in-memory App for CLI tests
func SetupCLITest(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	return testutil.NewTestApp(t, opts...)
}

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the command context so that
// cli.GetCLIFromContext hands it out instead of opening the real data dir.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithInput(t, testApp, cmd, args, "")
}

// ExecuteCLICommandWithInput is ExecuteCLICommand with stdin set to input.
func ExecuteCLICommandWithInput(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string, input string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := cli.WithApp(context.Background(), testApp)
	testutil.SetupCobraCommand(cmd, args)
	cmd.SetIn(strings.NewReader(input))

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}

// CreateTestProject adds a project straight through the store
func CreateTestProject(t *testing.T, a *app.App, name string) string {
	t.Helper()

	p, err := a.Store.AddProject(context.Background(), models.NewProject{Name: name, OwnerID: "1"})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p.ID
}

// CreateTestTask adds a todo task straight through the store
func CreateTestTask(t *testing.T, a *app.App, projectID, title string) string {
	t.Helper()

	task, err := a.Store.AddTask(context.Background(), models.NewTask{
		Title:     title,
		ProjectID: projectID,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}
