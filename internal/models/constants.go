package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// TASK STATUS
// ============================================================================

// TaskStatus is the board column a task sits in
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// statusOrder is the fixed display order of the board columns
var statusOrder = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

var statusTitles = map[TaskStatus]string{
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
}

// Statuses returns every status in display order.
func Statuses() []TaskStatus {
	out := make([]TaskStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Valid reports whether s is one of the three board statuses.
func (s TaskStatus) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title is the column heading for s.
func (s TaskStatus) Title() string {
	if title, ok := statusTitles[s]; ok {
		return title
	}
	return string(s)
}

func (s TaskStatus) String() string { return string(s) }

// ParseTaskStatus maps user input to a status. It accepts the canonical
// value or the column title, case-insensitively ("in progress" works too).
func ParseTaskStatus(s string) (TaskStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, status := range statusOrder {
		if normalized == string(status) || normalized == strings.ToLower(status.Title()) {
			return status, nil
		}
	}
	if strings.ReplaceAll(normalized, " ", "-") == string(StatusInProgress) {
		return StatusInProgress, nil
	}
	return "", fmt.Errorf("%w: %q (valid: todo, in-progress, done)", ErrInvalidStatus, s)
}

// ============================================================================
// TASK PRIORITY
// ============================================================================

// TaskPriority ranks a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var priorityOrder = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Priorities returns every priority from lowest to highest.
func Priorities() []TaskPriority {
	out := make([]TaskPriority, len(priorityOrder))
	copy(out, priorityOrder)
	return out
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	for _, known := range priorityOrder {
		if p == known {
			return true
		}
	}
	return false
}

// Title is the capitalized label, e.g. "High".
func (p TaskPriority) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func (p TaskPriority) String() string { return string(p) }

// ParseTaskPriority maps user input to a priority, case-insensitively.
func ParseTaskPriority(s string) (TaskPriority, error) {
	normalized := TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	if normalized.Valid() {
		return normalized, nil
	}
	return "", fmt.Errorf("%w: %q (valid: low, medium, high)", ErrInvalidPriority, s)
}

// ============================================================================
// FORM DEFAULTS
// ============================================================================

// DefaultTaskStatus and DefaultTaskPriority prefill the task form
const (
	DefaultTaskStatus   = StatusTodo
	DefaultTaskPriority = PriorityMedium
)
