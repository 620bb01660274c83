package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskpilot/internal/events"
	"github.com/thenoetrevino/taskpilot/internal/models"
	"github.com/thenoetrevino/taskpilot/internal/persist"
	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// ============================================================================
// Helpers
// ============================================================================

// fixedClock returns a clock frozen at a given instant until moved
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

type fixture struct {
	store *Store
	mem   *storage.Memory
	clock *fixedClock
	rec   *events.Recorder
}

func newFixture(t *testing.T, quota int64) *fixture {
	t.Helper()
	mem := storage.NewMemory(quota)
	clock := &fixedClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	rec := events.NewRecorder()

	s, err := Open(context.Background(), persist.NewAdapter(mem, nil),
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs("id-")),
		WithPublisher(rec),
	)
	require.NoError(t, err)
	return &fixture{store: s, mem: mem, clock: clock, rec: rec}
}

func (f *fixture) addProject(t *testing.T, name string) models.Project {
	t.Helper()
	p, err := f.store.AddProject(context.Background(), models.NewProject{Name: name, OwnerID: "1"})
	require.NoError(t, err)
	return p
}

func (f *fixture) addTask(t *testing.T, title, projectID string) models.Task {
	t.Helper()
	task, err := f.store.AddTask(context.Background(), models.NewTask{
		Title: title, ProjectID: projectID, Status: models.StatusTodo, Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return task
}

// reopen builds a second store over the same storage, as a restart would
func (f *fixture) reopen(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), persist.NewAdapter(f.mem, nil))
	require.NoError(t, err)
	return s
}

// ============================================================================
// Initialization
// ============================================================================

func TestOpen_SeedsEmptyCollections(t *testing.T) {
	f := newFixture(t, 0)

	assert.Empty(t, f.store.Projects())
	assert.Empty(t, f.store.Tasks())

	keys, err := f.mem.Keys(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ProjectsKey, TasksKey}, keys)
}

func TestOpen_MalformedCollectionsFallBack(t *testing.T) {
	mem := storage.NewMemory(0)
	ctx := context.Background()
	require.NoError(t, mem.SetItem(ctx, ProjectsKey, "garbage"))
	require.NoError(t, mem.SetItem(ctx, TasksKey, "null"))

	s, err := Open(ctx, persist.NewAdapter(mem, nil))
	require.NoError(t, err)
	assert.NotNil(t, s.Projects())
	assert.Empty(t, s.Projects())
	assert.NotNil(t, s.Tasks())

	raw, _, err := mem.GetItem(ctx, ProjectsKey)
	require.NoError(t, err)
	assert.Equal(t, "garbage", raw)
}

// ============================================================================
// Projects
// ============================================================================

func TestAddProject_Scenario(t *testing.T) {
	f := newFixture(t, 0)

	p, err := f.store.AddProject(context.Background(), models.NewProject{Name: "Alpha", Description: "d", OwnerID: "1"})
	require.NoError(t, err)

	projects := f.store.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, p, projects[0])
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, f.clock.Now(), p.CreatedAt)
	assert.Equal(t, f.clock.Now(), p.UpdatedAt)
	assert.Equal(t, "1", p.OwnerID)
	assert.Equal(t, []events.EventType{events.ProjectsChanged}, f.rec.Types())
}

func TestAddProject_EmptyName(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.store.AddProject(context.Background(), models.NewProject{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, f.store.Projects())
	assert.Empty(t, f.rec.Events())
}

func TestAddProject_SuppliedCreatedAtInFuture(t *testing.T) {
	f := newFixture(t, 0)
	future := f.clock.Now().Add(48 * time.Hour)

	p, err := f.store.AddProject(context.Background(), models.NewProject{Name: "Later", CreatedAt: &future})
	require.NoError(t, err)
	assert.Equal(t, future, p.CreatedAt)
	assert.False(t, p.UpdatedAt.Before(p.CreatedAt))
}

func TestAddProject_SuppliedCreatedAtKeepsPrecision(t *testing.T) {
	f := newFixture(t, 0)
	created := time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.FixedZone("CET", 3600))

	p, err := f.store.AddProject(context.Background(), models.NewProject{Name: "Exact", CreatedAt: &created})
	require.NoError(t, err)
	assert.True(t, created.Equal(p.CreatedAt))
	assert.Equal(t, 123456789, p.CreatedAt.Nanosecond())
	assert.Equal(t, time.UTC, p.CreatedAt.Location())

	got, ok := f.reopen(t).Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestAddProject_UniqueIDsWithinSameInstant(t *testing.T) {
	mem := storage.NewMemory(0)
	frozen := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(context.Background(), persist.NewAdapter(mem, nil),
		WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := range 50 {
		p, err := s.AddProject(context.Background(), models.NewProject{Name: fmt.Sprintf("P%d", i)})
		require.NoError(t, err)
		task, err := s.AddTask(context.Background(), models.NewTask{
			Title: "T", ProjectID: p.ID, Status: models.StatusTodo, Priority: models.PriorityLow,
		})
		require.NoError(t, err)

		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		require.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[p.ID] = true
		seen[task.ID] = true
	}
}

func TestUpdateProject_MergesAndAdvancesUpdatedAt(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "Alpha")

	// clock has not moved: updatedAt must still strictly advance
	name := "Beta"
	require.NoError(t, f.store.UpdateProject(context.Background(), p.ID, models.ProjectPatch{Name: &name}))

	got, ok := f.store.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Beta", got.Name)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	f.clock.Advance(time.Minute)
	require.NoError(t, f.store.UpdateProject(context.Background(), p.ID, models.ProjectPatch{}))
	again, _ := f.store.Project(p.ID)
	assert.Equal(t, f.clock.Now(), again.UpdatedAt)
}

func TestUpdateProject_UnknownIDIsNoop(t *testing.T) {
	f := newFixture(t, 0)
	f.addProject(t, "Alpha")
	f.rec.Reset()
	before, _, _ := f.mem.GetItem(context.Background(), ProjectsKey)

	name := "X"
	require.NoError(t, f.store.UpdateProject(context.Background(), "missing", models.ProjectPatch{Name: &name}))

	after, _, _ := f.mem.GetItem(context.Background(), ProjectsKey)
	assert.Equal(t, before, after)
	assert.Empty(t, f.rec.Events())
}

func TestUpdateProject_EmptyName(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "Alpha")

	empty := ""
	err := f.store.UpdateProject(context.Background(), p.ID, models.ProjectPatch{Name: &empty})
	assert.ErrorIs(t, err, ErrEmptyName)

	got, _ := f.store.Project(p.ID)
	assert.Equal(t, "Alpha", got.Name)
}

func TestDeleteProject_CascadesOnlyItsTasks(t *testing.T) {
	f := newFixture(t, 0)
	p1 := f.addProject(t, "P1")
	p2 := f.addProject(t, "P2")
	f.addTask(t, "a", p1.ID)
	keep := f.addTask(t, "b", p2.ID)
	f.addTask(t, "c", p1.ID)
	f.rec.Reset()

	require.NoError(t, f.store.DeleteProject(context.Background(), p1.ID))

	tasks := f.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
	assert.Empty(t, f.store.TasksByProject(p1.ID))
	_, ok := f.store.Project(p1.ID)
	assert.False(t, ok)

	// persisted state agrees with memory
	reopened := f.reopen(t)
	assert.Equal(t, f.store.Projects(), reopened.Projects())
	assert.Equal(t, f.store.Tasks(), reopened.Tasks())

	assert.Equal(t, []events.EventType{events.ProjectsChanged, events.TasksChanged}, f.rec.Types())
}

func TestDeleteProject_UnknownIDIsNoop(t *testing.T) {
	f := newFixture(t, 0)
	f.addProject(t, "P1")
	f.rec.Reset()

	require.NoError(t, f.store.DeleteProject(context.Background(), "missing"))
	assert.Len(t, f.store.Projects(), 1)
	assert.Empty(t, f.rec.Events())
}

func TestDeleteProject_ReadersNeverSeeOrphans(t *testing.T) {
	f := newFixture(t, 0)
	var ids []string
	for i := range 20 {
		p := f.addProject(t, fmt.Sprintf("P%d", i))
		f.addTask(t, "t", p.ID)
		ids = append(ids, p.ID)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	orphan := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			// take both snapshots under one read lock
			f.store.mu.RLock()
			projects := make(map[string]bool, len(f.store.projects))
			for _, p := range f.store.projects {
				projects[p.ID] = true
			}
			for _, task := range f.store.tasks {
				if !projects[task.ProjectID] {
					select {
					case orphan <- task.ID:
					default:
					}
				}
			}
			f.store.mu.RUnlock()
		}
	}()

	for _, id := range ids {
		require.NoError(t, f.store.DeleteProject(context.Background(), id))
	}
	close(stop)
	wg.Wait()

	select {
	case id := <-orphan:
		t.Fatalf("task %s observed without its project", id)
	default:
	}
}

// ============================================================================
// Tasks
// ============================================================================

func TestAddTask_Validation(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")
	ctx := context.Background()

	task := f.addTask(t, "T", p.ID)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)

	valid := func(mod func(*models.NewTask)) models.NewTask {
		in := models.NewTask{Title: "T", ProjectID: p.ID, Status: models.StatusTodo, Priority: models.PriorityMedium}
		mod(&in)
		return in
	}
	tests := []struct {
		name string
		in   models.NewTask
		want error
	}{
		{"empty title", valid(func(in *models.NewTask) { in.Title = " " }), ErrEmptyTitle},
		{"bad status", valid(func(in *models.NewTask) { in.Status = "blocked" }), ErrInvalidStatus},
		{"empty status", valid(func(in *models.NewTask) { in.Status = "" }), ErrInvalidStatus},
		{"bad priority", valid(func(in *models.NewTask) { in.Priority = "urgent" }), ErrInvalidPriority},
		{"empty priority", valid(func(in *models.NewTask) { in.Priority = "" }), ErrInvalidPriority},
		{"unknown project", valid(func(in *models.NewTask) { in.ProjectID = "nope" }), ErrProjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.store.AddTask(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, f.store.Tasks(), 1, "rejected input must not mutate")
		})
	}
}

func TestAddTask_Scenario(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P1")
	other := f.addTask(t, "other", p.ID)

	t1, err := f.store.AddTask(context.Background(), models.NewTask{
		Title: "T1", Status: models.StatusTodo, Priority: models.PriorityHigh, ProjectID: p.ID,
	})
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	done := models.StatusInProgress
	require.NoError(t, f.store.UpdateTask(context.Background(), t1.ID, models.TaskPatch{Status: &done}))

	got, _ := f.store.Task(t1.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.True(t, got.UpdatedAt.After(t1.UpdatedAt))

	untouched, _ := f.store.Task(other.ID)
	assert.Equal(t, other, untouched)
}

func TestUpdateTask_ValidationAndReferences(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")
	task := f.addTask(t, "T", p.ID)
	ctx := context.Background()

	bad := models.TaskStatus("blocked")
	assert.ErrorIs(t, f.store.UpdateTask(ctx, task.ID, models.TaskPatch{Status: &bad}), ErrInvalidStatus)

	badPriority := models.TaskPriority("urgent")
	assert.ErrorIs(t, f.store.UpdateTask(ctx, task.ID, models.TaskPatch{Priority: &badPriority}), ErrInvalidPriority)

	empty := ""
	assert.ErrorIs(t, f.store.UpdateTask(ctx, task.ID, models.TaskPatch{Title: &empty}), ErrEmptyTitle)

	missing := "nope"
	assert.ErrorIs(t, f.store.UpdateTask(ctx, task.ID, models.TaskPatch{ProjectID: &missing}), ErrProjectNotFound)

	got, _ := f.store.Task(task.ID)
	assert.Equal(t, task, got)

	// unknown task id wins over a bad project reference: nothing to update
	assert.NoError(t, f.store.UpdateTask(ctx, "ghost", models.TaskPatch{ProjectID: &missing}))
}

func TestUpdateTask_MoveBetweenProjects(t *testing.T) {
	f := newFixture(t, 0)
	p1 := f.addProject(t, "P1")
	p2 := f.addProject(t, "P2")
	task := f.addTask(t, "T", p1.ID)

	require.NoError(t, f.store.UpdateTask(context.Background(), task.ID, models.TaskPatch{ProjectID: &p2.ID}))
	assert.Empty(t, f.store.TasksByProject(p1.ID))
	assert.Len(t, f.store.TasksByProject(p2.ID), 1)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")
	a := f.addTask(t, "a", p.ID)
	b := f.addTask(t, "b", p.ID)

	require.NoError(t, f.store.DeleteTask(context.Background(), a.ID))
	require.NoError(t, f.store.DeleteTask(context.Background(), "ghost"))

	tasks := f.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
	assert.Len(t, f.store.Projects(), 1, "deleting a task never touches projects")
}

// ============================================================================
// Persistence
// ============================================================================

func TestWriteThrough_ReopenDeepEqual(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.store.AddTask(context.Background(), models.NewTask{
		Title: "T", ProjectID: p.ID, DueDate: &due, AssigneeID: "1",
		Status: models.StatusTodo, Priority: models.PriorityLow,
	})
	require.NoError(t, err)

	reopened := f.reopen(t)
	assert.Equal(t, f.store.Projects(), reopened.Projects())
	assert.Equal(t, f.store.Tasks(), reopened.Tasks())
}

func TestWriteThrough_RealClockRoundTrips(t *testing.T) {
	mem := storage.NewMemory(0)
	s, err := Open(context.Background(), persist.NewAdapter(mem, nil))
	require.NoError(t, err)

	p, err := s.AddProject(context.Background(), models.NewProject{Name: "P"})
	require.NoError(t, err)

	reopened, err := Open(context.Background(), persist.NewAdapter(mem, nil))
	require.NoError(t, err)
	got, ok := reopened.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestWriteThrough_QuotaFailureKeepsMemory(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")

	// shrink the quota by swapping in a tiny area holding the current state
	tiny := storage.NewMemory(256)
	raw, _, err := f.mem.GetItem(context.Background(), ProjectsKey)
	require.NoError(t, err)
	require.NoError(t, tiny.SetItem(context.Background(), ProjectsKey, raw))
	f.store.adapter = persist.NewAdapter(tiny, nil)
	f.rec.Reset()

	task, err := f.store.AddTask(context.Background(), models.NewTask{
		Title: strings.Repeat("long title ", 40), ProjectID: p.ID,
		Status: models.StatusTodo, Priority: models.PriorityLow,
	})

	var writeErr *persist.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, TasksKey, writeErr.Key)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	got, ok := f.store.Task(task.ID)
	assert.True(t, ok, "in-memory mutation stays applied")
	assert.Equal(t, task.Title, got.Title)
	assert.Empty(t, f.rec.Events(), "failed writes are not announced")
}

func TestReads_ReturnCopies(t *testing.T) {
	f := newFixture(t, 0)
	p := f.addProject(t, "P")
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	task, err := f.store.AddTask(context.Background(), models.NewTask{
		Title: "T", ProjectID: p.ID, DueDate: &due, Status: models.StatusDone, Priority: models.PriorityHigh,
	})
	require.NoError(t, err)

	projects := f.store.Projects()
	projects[0].Name = "mutated"
	tasks := f.store.Tasks()
	tasks[0].Title = "mutated"
	*tasks[0].DueDate = tasks[0].DueDate.AddDate(1, 0, 0)

	gotProject, _ := f.store.Project(p.ID)
	assert.Equal(t, "P", gotProject.Name)
	gotTask, _ := f.store.Task(task.ID)
	assert.Equal(t, "T", gotTask.Title)
	assert.Equal(t, 2024, gotTask.DueDate.Year())
}
