package services

import (
	"context"
	"strings"
	"time"

	"github.com/taskflow-app/taskflow/types"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	List(ctx context.Context) ([]types.Task, error)
	Get(ctx context.Context, id int) (types.Task, error)
	Create(ctx context.Context, task types.Task) (types.Task, error)
	Update(ctx context.Context, task types.Task) (types.Task, error)
	Delete(ctx context.Context, id int) error
}

// TaskService encapsulates task use-cases. Every operation takes the
// acting identity explicitly; there is no process-global session.
type TaskService struct {
	repo TaskRepository

	// enforceOwnership rejects Edit/Complete/Delete on tasks the actor
	// does not own. The reference behavior leaves it off: any
	// authenticated user may mutate any task by identifier.
	enforceOwnership bool

	now func() time.Time
}

// TaskServiceOption configures a TaskService.
type TaskServiceOption func(*TaskService)

// WithOwnershipEnforcement makes mutating operations verify that the
// actor owns the target task.
func WithOwnershipEnforcement(enabled bool) TaskServiceOption {
	return func(s *TaskService) { s.enforceOwnership = enabled }
}

func NewTaskService(repo TaskRepository, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a pending task owned by the actor. The due date must match
// DD/MM/YYYY exactly; the owner's display name is denormalized onto the
// record at creation time.
func (s *TaskService) Create(ctx context.Context, actor types.User, title, description, dueDate string) (types.Task, error) {
	if actor.ID == 0 {
		return types.Task{}, ErrNotAuthenticated
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Task{}, ErrMissingField
	}

	normalized, err := normalizeDueDate(dueDate)
	if err != nil {
		return types.Task{}, err
	}

	return s.repo.Create(ctx, types.Task{
		Title:       title,
		Description: description,
		OwnerID:     actor.ID,
		OwnerName:   actor.Name,
		DueDate:     normalized,
		Status:      types.StatusPending,
		CreatedAt:   s.now().Format(types.CreatedAtLayout),
	})
}

// List returns tasks, optionally restricted to those owned by the actor.
// Without scoping, the full collection is returned regardless of who asks
// (the admin view).
func (s *TaskService) List(ctx context.Context, actor types.User, scopeToOwner bool) ([]types.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !scopeToOwner || actor.ID == 0 {
		return tasks, nil
	}

	owned := make([]types.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.OwnerID == actor.ID {
			owned = append(owned, task)
		}
	}
	return owned, nil
}

// Edit updates the given fields of a task. Nil fields keep their prior
// value. A supplied due date is validated like on Create.
func (s *TaskService) Edit(ctx context.Context, actor types.User, id int, title, description, dueDate *string) (types.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Task{}, err
	}
	if err := s.authorize(actor, task); err != nil {
		return types.Task{}, err
	}

	if title != nil && strings.TrimSpace(*title) != "" {
		task.Title = strings.TrimSpace(*title)
	}
	if description != nil && *description != "" {
		task.Description = *description
	}
	if dueDate != nil && *dueDate != "" {
		normalized, err := normalizeDueDate(*dueDate)
		if err != nil {
			return types.Task{}, err
		}
		task.DueDate = normalized
	}

	return s.repo.Update(ctx, task)
}

// Complete marks the task as concluded. Completion is terminal: the
// status never goes back to pending.
func (s *TaskService) Complete(ctx context.Context, actor types.User, id int) (types.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Task{}, err
	}
	if err := s.authorize(actor, task); err != nil {
		return types.Task{}, err
	}

	task.Status = types.StatusCompleted
	return s.repo.Update(ctx, task)
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, actor types.User, id int) error {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, task); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// TaskStats summarizes the actor's tasks for the dashboard. Pending
// counts every stored-pending task, including those displaying as
// overdue; Overdue counts the displayed projection.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"concluidas"`
	Pending   int `json:"pendentes"`
	Overdue   int `json:"atrasadas"`
}

// Stats computes dashboard counters over the actor's tasks.
func (s *TaskService) Stats(ctx context.Context, actor types.User) (TaskStats, error) {
	tasks, err := s.List(ctx, actor, true)
	if err != nil {
		return TaskStats{}, err
	}

	now := s.now()
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case types.StatusCompleted:
			stats.Completed++
		case types.StatusPending:
			stats.Pending++
			if task.DisplayStatus(now) == types.StatusOverdue {
				stats.Overdue++
			}
		}
	}
	return stats, nil
}

func (s *TaskService) authorize(actor types.User, task types.Task) error {
	if actor.ID == 0 {
		return ErrNotAuthenticated
	}
	if s.enforceOwnership && task.OwnerID != actor.ID {
		return ErrForbidden
	}
	return nil
}

func normalizeDueDate(raw string) (string, error) {
	due, err := time.Parse(types.DueDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidDueDate
	}
	return due.Format(types.DueDateLayout), nil
}
