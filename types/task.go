package types

import "time"

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	// StatusPending is the initial status of every task.
	StatusPending TaskStatus = "Pendente"

	// StatusCompleted is the terminal status. Completion never reverses.
	StatusCompleted TaskStatus = "Concluída"

	// StatusOverdue is a display-time projection for pending tasks whose
	// due date has passed. It is never persisted.
	StatusOverdue TaskStatus = "Atrasada"
)

const (
	// DueDateLayout is the calendar-date format used for task deadlines.
	DueDateLayout = "02/01/2006"

	// CreatedAtLayout is the timestamp format recorded on task creation.
	CreatedAtLayout = "02/01/2006 15:04:05"
)

// Task represents a single tracked task.
// The JSON tags are the on-disk collection format and must not change.
type Task struct {
	// ID is the unique identifier of the task within its collection.
	ID int `json:"id"`

	// Title is the short name of the task.
	Title string `json:"titulo"`

	// Description is free text detailing the task.
	Description string `json:"descricao"`

	// OwnerID references the user that owns the task.
	OwnerID int `json:"responsavel_id"`

	// OwnerName is a denormalized copy of the owner's display name,
	// stored for display convenience. It is not resynced when the
	// owner later renames themselves.
	OwnerName string `json:"responsavel_nome"`

	// DueDate is the deadline in DD/MM/YYYY form.
	DueDate string `json:"prazo"`

	// Status is the stored lifecycle status: Pendente or Concluída.
	Status TaskStatus `json:"status"`

	// CreatedAt is the creation timestamp in DD/MM/YYYY HH:MM:SS form.
	CreatedAt string `json:"criacao"`
}

// DisplayStatus derives the status to show for the task at the given
// moment. A pending task whose due date is strictly before the start of
// the current calendar day displays as overdue; the stored status is
// untouched. Completed tasks are never reclassified, and an unparseable
// due date leaves the task pending.
func (t Task) DisplayStatus(now time.Time) TaskStatus {
	if t.Status != StatusPending {
		return t.Status
	}
	due, err := time.ParseInLocation(DueDateLayout, t.DueDate, now.Location())
	if err != nil {
		return StatusPending
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return StatusOverdue
	}
	return StatusPending
}
