// Package board groups tasks into the fixed status columns and turns card
// drops into status changes.
package board

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/taskpilot/internal/models"
)

// ColumnDef is one of the fixed board columns. ID doubles as the drop target
// identifier and the status it assigns.
type ColumnDef struct {
	ID    models.TaskStatus
	Title string
}

// Column is a ColumnDef with the tasks currently in it.
type Column struct {
	ColumnDef
	Tasks []models.Task
}

// Columns returns the board columns in display order.
func Columns() []ColumnDef {
	statuses := models.Statuses()
	defs := make([]ColumnDef, len(statuses))
	for i, s := range statuses {
		defs[i] = ColumnDef{ID: s, Title: s.Title()}
	}
	return defs
}

// GroupByStatus partitions tasks into exactly the three board columns, in
// display order. Tasks keep their input order inside a column; tasks with an
// unknown status are left out.
func GroupByStatus(tasks []models.Task) []Column {
	defs := Columns()
	cols := make([]Column, len(defs))
	index := make(map[models.TaskStatus]int, len(defs))
	for i, def := range defs {
		cols[i] = Column{ColumnDef: def, Tasks: []models.Task{}}
		index[def.ID] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// ColumnIndex returns the display position of status, or -1.
func ColumnIndex(status models.TaskStatus) int {
	for i, s := range models.Statuses() {
		if s == status {
			return i
		}
	}
	return -1
}

// TaskUpdater is the part of the data store the board writes through.
type TaskUpdater interface {
	Task(id string) (models.Task, bool)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error
}

// Board applies drag and drop gestures to tasks.
type Board struct {
	tasks  TaskUpdater
	logger *slog.Logger
}

// New creates a Board writing through tasks. A nil logger means slog.Default().
func New(tasks TaskUpdater, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{tasks: tasks, logger: logger}
}

// OnDragEnd handles a card released over dropTarget. When dropTarget is not
// a column id (or the task is unknown) the drag is cancelled and false is
// returned. Otherwise the task's status becomes the column's status.
// Dropping onto the current column still counts as an update.
func (b *Board) OnDragEnd(ctx context.Context, taskID, dropTarget string) (bool, error) {
	status := models.TaskStatus(dropTarget)
	if !status.Valid() {
		b.logger.Debug("drag cancelled: invalid drop target", "task_id", taskID, "target", dropTarget)
		return false, nil
	}
	if _, ok := b.tasks.Task(taskID); !ok {
		b.logger.Debug("drag cancelled: unknown task", "task_id", taskID)
		return false, nil
	}

	if err := b.tasks.UpdateTask(ctx, taskID, models.StatusPatch(status)); err != nil {
		return true, err
	}
	b.logger.Info("task dropped", "task_id", taskID, "status", status)
	return true, nil
}

// MoveNext drags the task onto the column right of its current one.
func (b *Board) MoveNext(ctx context.Context, taskID string) (models.TaskStatus, error) {
	return b.moveBy(ctx, taskID, 1)
}

// MovePrev drags the task onto the column left of its current one.
func (b *Board) MovePrev(ctx context.Context, taskID string) (models.TaskStatus, error) {
	return b.moveBy(ctx, taskID, -1)
}

func (b *Board) moveBy(ctx context.Context, taskID string, delta int) (models.TaskStatus, error) {
	task, ok := b.tasks.Task(taskID)
	if !ok {
		return "", ErrTaskNotFound
	}

	statuses := models.Statuses()
	target := ColumnIndex(task.Status) + delta
	switch {
	case target >= len(statuses):
		return task.Status, ErrAlreadyLastColumn
	case target < 0:
		return task.Status, ErrAlreadyFirstColumn
	}

	next := statuses[target]
	if _, err := b.OnDragEnd(ctx, taskID, string(next)); err != nil {
		return next, err
	}
	return next, nil
}
