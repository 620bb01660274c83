package models

import "errors"

// Validation errors shared by every layer that parses user input
var (
	// ErrInvalidStatus indicates a value outside todo, in-progress, done
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority indicates a value outside low, medium, high
	ErrInvalidPriority = errors.New("invalid task priority")
)
