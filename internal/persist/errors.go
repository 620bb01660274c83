package persist

import "fmt"

// WriteError reports a failed write-through of key. The in-memory value the
// caller tried to save is unaffected.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
