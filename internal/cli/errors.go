package cli

import (
	"errors"
	"log/slog"

	"github.com/thenoetrevino/taskpilot/internal/auth"
	"github.com/thenoetrevino/taskpilot/internal/board"
	"github.com/thenoetrevino/taskpilot/internal/persist"
	"github.com/thenoetrevino/taskpilot/internal/storage"
	"github.com/thenoetrevino/taskpilot/internal/store"
)

var (
	// ErrNotFound marks a project or task ID that does not exist
	ErrNotFound = errors.New("not found")

	// ErrNoUpdates is returned by update commands given nothing to change
	ErrNoUpdates = errors.New("nothing to update")

	// ErrNotSignedIn is returned by commands behind the sign-in gate
	ErrNotSignedIn = errors.New("not signed in")

	// ErrUsage marks a flag combination the command cannot act on
	ErrUsage = errors.New("invalid usage")
)

// CodeError carries a numeric exit code through the cobra error path.
// The message has already been reported by the OutputFormatter.
type CodeError struct {
	Code int
	Err  error
}

func (e *CodeError) Error() string { return e.Err.Error() }

func (e *CodeError) Unwrap() error { return e.Err }

// Exit wraps err with an explicit exit code.
func Exit(code int, err error) error {
	return &CodeError{Code: code, Err: err}
}

// ExitCodeOf returns the process exit code for an error returned by a
// command.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *CodeError
	if errors.As(err, &ee) {
		return ee.Code
	}
	code, _ := Classify(err)
	return code
}

// Classify maps domain errors to an exit code and a machine-readable error
// code for JSON output.
func Classify(err error) (int, string) {
	var writeErr *persist.WriteError
	switch {
	case errors.Is(err, ErrNoUpdates):
		return ExitUsage, "NO_UPDATES"
	case errors.Is(err, ErrUsage):
		return ExitUsage, "USAGE_ERROR"
	case errors.Is(err, ErrNotFound), errors.Is(err, board.ErrTaskNotFound):
		return ExitNotFound, "NOT_FOUND"
	case errors.Is(err, store.ErrProjectNotFound):
		return ExitValidation, "PROJECT_NOT_FOUND"
	case errors.Is(err, store.ErrEmptyName),
		errors.Is(err, store.ErrEmptyTitle),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidPriority),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrEmptyName),
		errors.Is(err, auth.ErrEmptyEmail),
		errors.Is(err, board.ErrAlreadyFirstColumn),
		errors.Is(err, board.ErrAlreadyLastColumn):
		return ExitValidation, "VALIDATION_ERROR"
	case errors.Is(err, ErrNotSignedIn):
		return ExitError, "NOT_SIGNED_IN"
	case errors.Is(err, ErrInvalidDate):
		return ExitDataErr, "INVALID_DATE"
	case errors.Is(err, storage.ErrQuotaExceeded):
		return ExitError, "QUOTA_EXCEEDED"
	case errors.As(err, &writeErr):
		return ExitError, "STORAGE_ERROR"
	default:
		return ExitError, "ERROR"
	}
}

// Fail reports err through the formatter and returns it wrapped with its
// exit code.
func Fail(f *OutputFormatter, err error, suggestion string) error {
	code, errCode := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(errCode, err.Error(), suggestion); fmtErr != nil {
		slog.Error("Error formatting error message", "error", fmtErr)
	}
	return Exit(code, err)
}
