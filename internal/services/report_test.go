package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/types"
)

type reportFixture struct {
	users   *store.UserRepository
	tasks   *store.TaskRepository
	reports *ReportService
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	dir := t.TempDir()
	users := store.NewUserRepository(dir, testLogger())
	tasks := store.NewTaskRepository(dir, testLogger())
	return reportFixture{
		users:   users,
		tasks:   tasks,
		reports: NewReportService(tasks, users, t.TempDir()),
	}
}

func (f reportFixture) addTask(t *testing.T, task types.Task) types.Task {
	t.Helper()
	created, err := f.tasks.Create(context.Background(), task)
	require.NoError(t, err)
	return created
}

func TestReportStatusFilters(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	f.addTask(t, types.Task{Title: "feita", OwnerID: 1, Status: types.StatusCompleted, DueDate: "01/01/2020"})
	f.addTask(t, types.Task{Title: "pendente futura", OwnerID: 1, Status: types.StatusPending, DueDate: "31/12/2099"})
	f.addTask(t, types.Task{Title: "pendente vencida", OwnerID: 1, Status: types.StatusPending, DueDate: "01/01/2020"})
	f.addTask(t, types.Task{Title: "data quebrada", OwnerID: 1, Status: types.StatusPending, DueDate: "???"})

	completed, err := f.reports.Completed(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "feita", completed[0].Title)

	// The pending view is by stored status: it includes the overdue task
	// and the one with the broken date.
	pending, err := f.reports.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	// Overdue re-derives: only stored-pending tasks strictly past due;
	// unparseable dates are silently excluded.
	overdue, err := f.reports.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "pendente vencida", overdue[0].Title)
}

func TestRenderResolvesOwnerNames(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	ana, err := f.users.Create(ctx, types.User{Name: "Ana Silva", Email: "ana@example.com", Login: "ana", PasswordHash: HashSecret("1234")})
	require.NoError(t, err)

	f.addTask(t, types.Task{Title: "Pagar contas", Description: "Contas do mês", OwnerID: ana.ID, DueDate: "01/01/2020", Status: types.StatusPending})
	f.addTask(t, types.Task{Title: "Sem dono", OwnerID: 99, DueDate: "01/01/2020", Status: types.StatusPending})

	tasks, err := f.reports.Pending(ctx)
	require.NoError(t, err)

	rendered := f.reports.Render(ctx, ReportTitlePending, tasks)

	assert.Contains(t, rendered, "--- Tarefas Pendentes ---")
	assert.Contains(t, rendered, "Título: Pagar contas")
	assert.Contains(t, rendered, "Descrição: Contas do mês")
	assert.Contains(t, rendered, "Prazo: 01/01/2020")
	assert.Contains(t, rendered, "Responsável: Ana Silva")
	assert.Contains(t, rendered, "Responsável: Desconhecido")
	assert.Contains(t, rendered, "Total: 2 tarefa(s)")
}

func TestRenderEmptyReport(t *testing.T) {
	f := newReportFixture(t)

	rendered := f.reports.Render(context.Background(), ReportTitleCompleted, nil)

	assert.Equal(t, "--- Tarefas Concluídas ---\nNenhuma tarefa encontrada.", rendered)
}

func TestExportWritesDistinctFilesWithIdenticalContent(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	f.addTask(t, types.Task{Title: "feita", OwnerID: 1, Status: types.StatusCompleted, DueDate: "01/01/2020"})
	tasks, err := f.reports.Completed(ctx)
	require.NoError(t, err)

	// Pin the clock so both exports land in the same second and must
	// fall back to the collision suffix.
	f.reports.now = func() time.Time {
		return time.Date(2026, time.June, 1, 9, 15, 0, 0, time.Local)
	}

	first, err := f.reports.Export(ctx, ReportTitleCompleted, tasks)
	require.NoError(t, err)
	second, err := f.reports.Export(ctx, ReportTitleCompleted, tasks)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "repeated exports must never collide")
	assert.Contains(t, first, "relatorio_tarefas_concluídas_20260601_091500")

	firstBody, err := os.ReadFile(first)
	require.NoError(t, err)
	secondBody, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstBody), string(secondBody))
	assert.Contains(t, string(firstBody), "Título: feita")
}

func TestEncodeCSV(t *testing.T) {
	f := newReportFixture(t)

	data, err := f.reports.EncodeCSV([]types.Task{{
		ID:        1,
		Title:     "Pagar contas",
		DueDate:   "01/01/2020",
		Status:    types.StatusPending,
		CreatedAt: "01/06/2026 09:15:00",
		OwnerName: "Ana Silva",
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Título,Descrição,Prazo,Status,Criação,Responsável", lines[0])
	assert.Contains(t, lines[1], "Pagar contas")
	assert.Contains(t, lines[1], "Pendente")
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	f := newReportFixture(t)
	original := []types.Task{{ID: 1, Title: "Pagar contas", Status: types.StatusPending}}

	data, err := f.reports.EncodeJSON(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"titulo": "Pagar contas"`)
}
