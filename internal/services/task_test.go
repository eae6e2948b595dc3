package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/types"
)

var (
	ana   = types.User{ID: 1, Name: "Ana Silva", Login: "ana"}
	bruno = types.User{ID: 2, Name: "Bruno Costa", Login: "bruno"}
)

func newTaskService(t *testing.T, opts ...TaskServiceOption) *TaskService {
	t.Helper()
	return NewTaskService(store.NewTaskRepository(t.TempDir(), testLogger()), opts...)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)
	svc.now = func() time.Time {
		return time.Date(2026, time.June, 1, 9, 15, 0, 0, time.Local)
	}

	task, err := svc.Create(ctx, ana, "Pagar contas", "Contas do mês", "10/12/2026")
	require.NoError(t, err)

	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Pagar contas", task.Title)
	assert.Equal(t, ana.ID, task.OwnerID)
	assert.Equal(t, "Ana Silva", task.OwnerName)
	assert.Equal(t, "10/12/2026", task.DueDate)
	assert.Equal(t, types.StatusPending, task.Status)
	assert.Equal(t, "01/06/2026 09:15:00", task.CreatedAt)
}

func TestCreateTaskRequiresIdentity(t *testing.T) {
	svc := newTaskService(t)

	_, err := svc.Create(context.Background(), types.User{}, "Pagar contas", "", "10/12/2026")

	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateTaskValidatesDueDate(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	for _, bad := range []string{"", "2026-12-10", "32/01/2026", "10/13/2026", "amanhã"} {
		_, err := svc.Create(ctx, ana, "Tarefa", "", bad)
		assert.ErrorIs(t, err, ErrInvalidDueDate, "due date %q", bad)
	}

	_, err := svc.Create(ctx, ana, "", "", "10/12/2026")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestListScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	_, err := svc.Create(ctx, ana, "Tarefa da Ana", "", "10/12/2026")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bruno, "Tarefa do Bruno", "", "10/12/2026")
	require.NoError(t, err)

	// Scoped: Ana only sees her own task.
	mine, err := svc.List(ctx, ana, true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Tarefa da Ana", mine[0].Title)

	// Unscoped admin view: everything, for any caller.
	all, err := svc.List(ctx, ana, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEditKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	task, err := svc.Create(ctx, ana, "Título original", "Descrição original", "10/12/2026")
	require.NoError(t, err)

	newTitle := "Título novo"
	edited, err := svc.Edit(ctx, ana, task.ID, &newTitle, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Título novo", edited.Title)
	assert.Equal(t, "Descrição original", edited.Description)
	assert.Equal(t, "10/12/2026", edited.DueDate)

	badDate := "não é data"
	_, err = svc.Edit(ctx, ana, task.ID, nil, nil, &badDate)
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	_, err = svc.Edit(ctx, ana, 99, &newTitle, nil, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	task, err := svc.Create(ctx, ana, "Pagar contas", "", "10/12/2026")
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, ana, task.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, completed.Status)

	_, err = svc.Complete(ctx, ana, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, ana, task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, ana, task.ID), store.ErrNotFound)
}

// The reference behavior: any authenticated user may mutate any task by
// identifier, regardless of ownership.
func TestMutationsWithoutOwnershipEnforcement(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	task, err := svc.Create(ctx, bruno, "Tarefa do Bruno", "", "10/12/2026")
	require.NoError(t, err)

	_, err = svc.Complete(ctx, ana, task.ID)
	assert.NoError(t, err, "default mode allows cross-user complete")

	err = svc.Delete(ctx, ana, task.ID)
	assert.NoError(t, err, "default mode allows cross-user delete")
}

// The hardened variant rejects mutating another user's task.
func TestMutationsWithOwnershipEnforcement(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t, WithOwnershipEnforcement(true))

	task, err := svc.Create(ctx, bruno, "Tarefa do Bruno", "", "10/12/2026")
	require.NoError(t, err)

	title := "invadida"
	_, err = svc.Edit(ctx, ana, task.ID, &title, nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Complete(ctx, ana, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, ana, task.ID), ErrForbidden)

	// The owner can still do everything.
	_, err = svc.Complete(ctx, bruno, task.ID)
	assert.NoError(t, err)
}

// Register Ana, create a past-due task: it lists as overdue until
// completed, and never again afterwards even though the date stays in the
// past.
func TestOverdueThenCompletedScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	task, err := svc.Create(ctx, ana, "Pay bills", "", "01/01/2020")
	require.NoError(t, err)

	listed, err := svc.List(ctx, ana, true)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, types.StatusOverdue, listed[0].DisplayStatus(time.Now()))

	_, err = svc.Complete(ctx, ana, task.ID)
	require.NoError(t, err)

	listed, err = svc.List(ctx, ana, true)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, types.StatusCompleted, listed[0].Status)
	assert.Equal(t, types.StatusCompleted, listed[0].DisplayStatus(time.Now()))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService(t)

	_, err := svc.Create(ctx, ana, "Atrasada", "", "01/01/2020")
	require.NoError(t, err)
	_, err = svc.Create(ctx, ana, "Futura", "", "31/12/2099")
	require.NoError(t, err)
	done, err := svc.Create(ctx, ana, "Feita", "", "01/01/2020")
	require.NoError(t, err)
	_, err = svc.Complete(ctx, ana, done.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, bruno, "De outro usuário", "", "01/01/2020")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, ana)
	require.NoError(t, err)

	assert.Equal(t, TaskStats{Total: 3, Completed: 1, Pending: 2, Overdue: 1}, stats)
}
