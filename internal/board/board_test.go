package board

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/persist"
	"github.com/thenoetrevino/taskpilot/internal/storage"
	"github.com/thenoetrevino/taskpilot/internal/store"
)

func setupBoard(t *testing.T) (*Board, *store.Store, models.Project) {
	t.Helper()
	s, err := store.Open(context.Background(), persist.NewAdapter(storage.NewMemory(0), nil))
	require.NoError(t, err)
	p, err := s.AddProject(context.Background(), models.NewProject{Name: "P1"})
	require.NoError(t, err)
	return New(s, nil), s, p
}

func addTask(t *testing.T, s *store.Store, projectID, title string, status models.TaskStatus) models.Task {
	t.Helper()
	task, err := s.AddTask(context.Background(), models.NewTask{
		Title: title, ProjectID: projectID, Status: status, Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return task
}

func TestColumns_FixedOrder(t *testing.T) {
	defs := Columns()
	require.Len(t, defs, 3)
	assert.Equal(t, ColumnDef{ID: models.StatusTodo, Title: "To Do"}, defs[0])
	assert.Equal(t, ColumnDef{ID: models.StatusInProgress, Title: "In Progress"}, defs[1])
	assert.Equal(t, ColumnDef{ID: models.StatusDone, Title: "Done"}, defs[2])
}

func TestGroupByStatus_KeepsInputOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Status: models.StatusDone},
		{ID: "b", Status: models.StatusTodo},
		{ID: "c", Status: models.StatusDone},
		{ID: "d", Status: "archived"},
		{ID: "e", Status: models.StatusTodo},
	}

	cols := GroupByStatus(tasks)

	require.Len(t, cols, 3)
	ids := func(c Column) []string {
		out := []string{}
		for _, t := range c.Tasks {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Equal(t, []string{"b", "e"}, ids(cols[0]))
	assert.Equal(t, []string{}, ids(cols[1]))
	assert.Equal(t, []string{"a", "c"}, ids(cols[2]))
}

func TestGroupByStatus_Empty(t *testing.T) {
	cols := GroupByStatus(nil)
	require.Len(t, cols, 3)
	for _, c := range cols {
		assert.NotNil(t, c.Tasks)
		assert.Empty(t, c.Tasks)
	}
}

func TestUpdateToDone_LandsInDoneOnly(t *testing.T) {
	_, s, p := setupBoard(t)
	task := addTask(t, s, p.ID, "T", models.StatusTodo)

	done := models.StatusDone
	require.NoError(t, s.UpdateTask(context.Background(), task.ID, models.TaskPatch{Status: &done}))

	cols := GroupByStatus(s.Tasks())
	for _, c := range cols {
		found := false
		for _, x := range c.Tasks {
			found = found || x.ID == task.ID
		}
		assert.Equal(t, c.ID == models.StatusDone, found, "column %s", c.ID)
	}
}

func TestOnDragEnd_ValidTarget(t *testing.T) {
	b, s, p := setupBoard(t)
	t1 := addTask(t, s, p.ID, "T1", models.StatusTodo)
	other := addTask(t, s, p.ID, "other", models.StatusTodo)

	moved, err := b.OnDragEnd(context.Background(), t1.ID, "in-progress")
	require.NoError(t, err)
	assert.True(t, moved)

	got, _ := s.Task(t1.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.True(t, got.UpdatedAt.After(t1.UpdatedAt))

	untouched, _ := s.Task(other.ID)
	assert.Equal(t, other, untouched)
}

func TestOnDragEnd_InvalidTargetChangesNothing(t *testing.T) {
	b, s, p := setupBoard(t)
	addTask(t, s, p.ID, "T1", models.StatusTodo)
	addTask(t, s, p.ID, "T2", models.StatusDone)
	before := s.Tasks()

	for _, target := range []string{"", "In Progress", "backlog", p.ID} {
		moved, err := b.OnDragEnd(context.Background(), before[0].ID, target)
		require.NoError(t, err)
		assert.False(t, moved, "target %q", target)
	}

	assert.Equal(t, before, s.Tasks())
}

func TestOnDragEnd_UnknownTask(t *testing.T) {
	b, s, _ := setupBoard(t)
	moved, err := b.OnDragEnd(context.Background(), "ghost", "done")
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, s.Tasks())
}

func TestOnDragEnd_AnyStatusReachable(t *testing.T) {
	b, s, p := setupBoard(t)
	task := addTask(t, s, p.ID, "T", models.StatusTodo)

	for _, from := range models.Statuses() {
		for _, to := range models.Statuses() {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				_, err := b.OnDragEnd(context.Background(), task.ID, string(from))
				require.NoError(t, err)
				moved, err := b.OnDragEnd(context.Background(), task.ID, string(to))
				require.NoError(t, err)
				assert.True(t, moved)
				got, _ := s.Task(task.ID)
				assert.Equal(t, to, got.Status)
			})
		}
	}
}

func TestMoveNextPrev(t *testing.T) {
	b, s, p := setupBoard(t)
	task := addTask(t, s, p.ID, "T", models.StatusTodo)
	ctx := context.Background()

	_, err := b.MovePrev(ctx, task.ID)
	assert.ErrorIs(t, err, ErrAlreadyFirstColumn)

	status, err := b.MoveNext(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)

	status, err = b.MoveNext(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, status)

	_, err = b.MoveNext(ctx, task.ID)
	assert.ErrorIs(t, err, ErrAlreadyLastColumn)

	status, err = b.MovePrev(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)

	_, err = b.MoveNext(ctx, "ghost")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
