package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/taskflow-app/taskflow/types"
)

// Report titles as shown in renderings and embedded in export filenames.
const (
	ReportTitleCompleted = "Tarefas Concluídas"
	ReportTitlePending   = "Tarefas Pendentes"
	ReportTitleOverdue   = "Tarefas Atrasadas"
)

const unknownOwnerName = "Desconhecido"

// ReportTaskSource lists the tasks reports are computed over.
type ReportTaskSource interface {
	List(ctx context.Context) ([]types.Task, error)
}

// ReportUserDirectory resolves owner display names.
type ReportUserDirectory interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

// ReportService produces status-filtered task views and their rendered
// and exported forms.
type ReportService struct {
	tasks     ReportTaskSource
	users     ReportUserDirectory
	exportDir string

	now func() time.Time
}

func NewReportService(tasks ReportTaskSource, users ReportUserDirectory, exportDir string) *ReportService {
	return &ReportService{
		tasks:     tasks,
		users:     users,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// Completed returns every task with stored status Concluída.
func (s *ReportService) Completed(ctx context.Context) ([]types.Task, error) {
	return s.filterStatus(ctx, types.StatusCompleted)
}

// Pending returns every task with stored status Pendente. Tasks that
// display as overdue elsewhere are included; this view does not re-derive
// the projection.
func (s *ReportService) Pending(ctx context.Context) ([]types.Task, error) {
	return s.filterStatus(ctx, types.StatusPending)
}

// Overdue returns pending tasks whose due date is strictly before the
// start of the current day. Tasks with unparseable due dates are skipped,
// not reported as errors.
func (s *ReportService) Overdue(ctx context.Context) ([]types.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue := make([]types.Task, 0)
	for _, task := range tasks {
		if task.DisplayStatus(now) == types.StatusOverdue {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

func (s *ReportService) filterStatus(ctx context.Context, status types.TaskStatus) ([]types.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]types.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

// Render formats a report as plain text: a header, one block per task
// with the owner name resolved through the user directory, and a count
// footer. An empty list renders as a single no-tasks line.
func (s *ReportService) Render(ctx context.Context, title string, tasks []types.Task) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("--- %s ---\nNenhuma tarefa encontrada.", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", title)
	for _, task := range tasks {
		ownerName := unknownOwnerName
		if owner, err := s.users.GetByID(ctx, task.OwnerID); err == nil {
			ownerName = owner.Name
		}

		fmt.Fprintf(&b, "ID: %d\n", task.ID)
		fmt.Fprintf(&b, "Título: %s\n", task.Title)
		fmt.Fprintf(&b, "Descrição: %s\n", task.Description)
		fmt.Fprintf(&b, "Prazo: %s\n", task.DueDate)
		fmt.Fprintf(&b, "Status: %s\n", task.Status)
		fmt.Fprintf(&b, "Responsável: %s\n", ownerName)
		b.WriteString(strings.Repeat("-", 20) + "\n")
	}
	fmt.Fprintf(&b, "Total: %d tarefa(s)", len(tasks))
	return b.String()
}

// Export writes the rendered report to a new UTF-8 text file in the
// export directory. The filename embeds the report title and a
// second-resolution timestamp; if two exports land in the same second a
// numeric suffix keeps them from colliding. Returns the file path.
func (s *ReportService) Export(ctx context.Context, title string, tasks []types.Task) (string, error) {
	rendered := s.Render(ctx, title, tasks)
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}

	stamp := s.now().Format("20060102_150405")
	base := fmt.Sprintf("relatorio_%s_%s", slugify(title), stamp)

	for attempt := 0; ; attempt++ {
		name := base + ".txt"
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d.txt", base, attempt)
		}
		path := filepath.Join(s.exportDir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("export report: %w", err)
		}
		if _, err := f.WriteString(rendered); err != nil {
			f.Close()
			return "", fmt.Errorf("export report: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("export report: %w", err)
		}
		return path, nil
	}
}

// EncodeJSON renders tasks as indented JSON for download responses.
func (s *ReportService) EncodeJSON(tasks []types.Task) ([]byte, error) {
	return json.MarshalIndent(tasks, "", "  ")
}

// EncodeCSV renders tasks as CSV with a header row for download
// responses.
func (s *ReportService) EncodeCSV(tasks []types.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Título", "Descrição", "Prazo", "Status", "Criação", "Responsável"}); err != nil {
		return nil, err
	}
	for _, task := range tasks {
		record := []string{
			fmt.Sprintf("%d", task.ID),
			task.Title,
			task.Description,
			task.DueDate,
			string(task.Status),
			task.CreatedAt,
			task.OwnerName,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}
