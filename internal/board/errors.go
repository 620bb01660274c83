package board

import "errors"

var (
	// ErrAlreadyLastColumn indicates that the task is already in the last column
	ErrAlreadyLastColumn = errors.New("task is already in the last column")

	// ErrAlreadyFirstColumn indicates that the task is already in the first column
	ErrAlreadyFirstColumn = errors.New("task is already in the first column")

	// ErrTaskNotFound indicates that the moved task does not exist
	ErrTaskNotFound = errors.New("task not found")
)
