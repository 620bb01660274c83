package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/taskpilot/cmd"
	"github.com/thenoetrevino/taskpilot/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())
	if err == nil {
		return
	}

	// Command errors were already reported by the output formatter
	var exitErr *cli.CodeError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCodeOf(err))
}
