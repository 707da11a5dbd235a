package service_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/ordering"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteTaskService(t *testing.T) (service.TaskService, *mocks.RecordingNotifier) {
	t.Helper()
	notifier := &mocks.RecordingNotifier{}
	return service.NewTaskService(sqlite.NewTaskStore(testdb.OpenSQLite(t), nil), notifier, nil), notifier
}

func TestTaskService_SequentialCreatesAreDense(t *testing.T) {
	t.Parallel()

	svc, _ := newSQLiteTaskService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		task, err := svc.Create(ctx, service.CreateTaskInput{Title: "todo", UserID: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, i, task.Order)
	}

	// Other partitions start over at zero.
	done, err := svc.Create(ctx, service.CreateTaskInput{Title: "done", UserID: "user-1", Category: domain.CategoryDone})
	require.NoError(t, err)
	assert.Equal(t, 0, done.Order)

	other, err := svc.Create(ctx, service.CreateTaskInput{Title: "todo", UserID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.Order)
}

func TestTaskService_CreateAfterDeleteLeavesGap(t *testing.T) {
	t.Parallel()

	svc, _ := newSQLiteTaskService(t)
	ctx := context.Background()

	var created []*domain.Task
	for i := 0; i < 3; i++ {
		task, err := svc.Create(ctx, service.CreateTaskInput{Title: "t", UserID: "user-1"})
		require.NoError(t, err)
		created = append(created, task)
	}

	require.NoError(t, svc.Delete(ctx, created[1].ID))
	next, err := svc.Create(ctx, service.CreateTaskInput{Title: "t", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.Order)
}

func TestTaskService_ListStaysSortedAcrossMutations(t *testing.T) {
	t.Parallel()

	svc, _ := newSQLiteTaskService(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, category := range []domain.Category{domain.CategoryToDo, domain.CategoryToDo, domain.CategoryInProgress, domain.CategoryDone} {
		task, err := svc.Create(ctx, service.CreateTaskInput{Title: "t", UserID: "user-1", Category: category})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	order := 9
	_, err := svc.Update(ctx, ids[0], domain.TaskPatch{Order: &order})
	require.NoError(t, err)

	require.NoError(t, svc.Reorder(ctx, "user-1", []ordering.Entry{
		{ID: ids[1].String(), Order: 4, Category: "Done"},
		{ID: ids[3].String(), Order: 2, Category: "Done"},
	}))

	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.True(t, sort.SliceIsSorted(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order }))
	assert.Equal(t, 9, tasks[len(tasks)-1].Order)
}

func TestTaskService_NoOpReorderFails(t *testing.T) {
	t.Parallel()

	svc, notifier := newSQLiteTaskService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, service.CreateTaskInput{Title: "a", UserID: "user-1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, service.CreateTaskInput{Title: "b", UserID: "user-1"})
	require.NoError(t, err)
	notifier.Reset()

	err = svc.Reorder(ctx, "user-1", []ordering.Entry{
		{ID: a.ID.String(), Order: a.Order, Category: string(a.Category)},
		{ID: b.ID.String(), Order: b.Order, Category: string(b.Category)},
	})
	assert.ErrorIs(t, err, service.ErrNoTasksModified)
	assert.Empty(t, notifier.Events())

	err = svc.Reorder(ctx, "user-1", []ordering.Entry{{ID: uuid.NewString(), Order: 0, Category: "Done"}})
	assert.ErrorIs(t, err, service.ErrNoTasksModified)
}

func TestTaskService_EventsPerMutation(t *testing.T) {
	t.Parallel()

	svc, notifier := newSQLiteTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, service.CreateTaskInput{Title: "a", UserID: "user-1"})
	require.NoError(t, err)
	title := "b"
	_, err = svc.Update(ctx, task.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, task.ID))
	require.NoError(t, svc.Delete(ctx, task.ID), "deleting twice still succeeds")

	updated, err := svc.Update(ctx, task.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)

	var types []events.Type
	for _, ev := range notifier.Events() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []events.Type{events.TypeCreate, events.TypeUpdate, events.TypeDelete, events.TypeDelete}, types)

	evs := notifier.Events()
	assert.Equal(t, task.ID, evs[0].Task.ID)
	assert.Equal(t, "b", evs[1].Task.Title)
}
