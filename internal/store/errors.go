package store

import (
	"errors"

	"github.com/thenoetrevino/taskpilot/internal/models"
)

// Validation errors. All are reported before any state changes.
var (
	ErrEmptyName       = errors.New("project name cannot be empty")
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrInvalidStatus   = models.ErrInvalidStatus
	ErrInvalidPriority = models.ErrInvalidPriority
	ErrProjectNotFound = errors.New("project not found")
)
