package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/taskpilot/internal/cli"
	"github.com/thenoetrevino/taskpilot/internal/models"
)

var errMoveTarget = fmt.Errorf("%w: exactly one of --to, --next or --prev must be specified", cli.ErrUsage)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another board column",
		Long: `Move a task the way dragging its card would.

Examples:
  # Drop onto a column
  taskpilot task move --id=TASK_ID --to=done

  # One column right or left
  taskpilot task move --id=TASK_ID --next
  taskpilot task move --id=TASK_ID --prev
`,
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Target flags
	cmd.Flags().String("to", "", "Target column: todo, in-progress, done")
	cmd.Flags().Bool("next", false, "Move one column right")
	cmd.Flags().Bool("prev", false, "Move one column left")
	cmd.MarkFlagsMutuallyExclusive("to", "next", "prev")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd, "Minimal output (new status only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	to, _ := cmd.Flags().GetString("to")
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")

	formatter := cli.FormatterFromFlags(cmd)

	if to == "" && !next && !prev {
		return cli.Fail(formatter, errMoveTarget, "")
	}

	var target models.TaskStatus
	if to != "" {
		status, err := models.ParseTaskStatus(to)
		if err != nil {
			return cli.Fail(formatter, err, "")
		}
		target = status
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

	before, err := lookup(cliInstance, taskID)
	if err != nil {
		return cli.Fail(formatter, err, listSuggestion)
	}

	b := cliInstance.App.Board
	switch {
	case next:
		target, err = b.MoveNext(ctx, taskID)
	case prev:
		target, err = b.MovePrev(ctx, taskID)
	default:
		_, err = b.OnDragEnd(ctx, taskID, string(target))
	}
	if err != nil {
		return cli.Fail(formatter, err, "")
	}

	if formatter.Quiet {
		fmt.Println(target)
		return nil
	}

	if formatter.JSON {
		return formatter.Result("move", map[string]any{
			"taskId": taskID,
			"from":   before.Status,
			"to":     target,
		})
	}

	fmt.Printf("✓ Task '%s' moved: %s → %s\n", before.Title, before.Status.Title(), target.Title())
	return nil
}
