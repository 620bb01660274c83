package models

import "time"

// Task represents a single card on the kanban board
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  string       `json:"assigneeId,omitempty"`
	ProjectID   string       `json:"projectId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

// GetID returns the task ID
func (t Task) GetID() string { return t.ID }

// Clone returns a copy of the task that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// NewTask carries the caller-supplied fields of a task being created
type NewTask struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   string
	AssigneeID  string
	DueDate     *time.Time
}

// TaskPatch is a partial update for a task.
// Fields with pointers are optional - nil means don't update.
// ClearDueDate and ClearAssignee remove the optional fields and win over
// DueDate and AssigneeID when both are set.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *TaskStatus
	Priority      *TaskPriority
	ProjectID     *string
	AssigneeID    *string
	DueDate       *time.Time
	ClearDueDate  bool
	ClearAssignee bool
}

// IsEmpty reports whether the patch would change no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.ProjectID == nil && p.AssigneeID == nil &&
		p.DueDate == nil && !p.ClearDueDate && !p.ClearAssignee
}

// Apply merges the patch into a copy of task and returns it.
// Timestamps are left to the caller.
func (p TaskPatch) Apply(task Task) Task {
	task = task.Clone()
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.ProjectID != nil {
		task.ProjectID = *p.ProjectID
	}
	if p.AssigneeID != nil {
		task.AssigneeID = *p.AssigneeID
	}
	if p.DueDate != nil {
		due := *p.DueDate
		task.DueDate = &due
	}
	if p.ClearAssignee {
		task.AssigneeID = ""
	}
	if p.ClearDueDate {
		task.DueDate = nil
	}
	return task
}

// StatusPatch is the patch a board drop produces.
func StatusPatch(status TaskStatus) TaskPatch {
	return TaskPatch{Status: &status}
}
