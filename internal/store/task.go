package store

import (
	"context"
	"log/slog"

	"github.com/taskflow-app/taskflow/types"
)

const tasksCollection = "tarefas"

// TaskRepository handles persistence for tasks.
type TaskRepository struct {
	col *collection[types.Task]
}

func NewTaskRepository(dataDir string, log *slog.Logger) *TaskRepository {
	return &TaskRepository{col: newCollection[types.Task](dataDir, tasksCollection, log)}
}

func (r *TaskRepository) List(ctx context.Context) ([]types.Task, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	return r.col.load()
}

func (r *TaskRepository) Get(ctx context.Context, id int) (types.Task, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	tasks, err := r.col.load()
	if err != nil {
		return types.Task{}, err
	}
	for _, task := range tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return types.Task{}, ErrNotFound
}

func (r *TaskRepository) Create(ctx context.Context, task types.Task) (types.Task, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	tasks, err := r.col.load()
	if err != nil {
		return types.Task{}, err
	}

	maxID := 0
	for _, existing := range tasks {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	task.ID, err = r.col.nextID(maxID)
	if err != nil {
		return types.Task{}, err
	}

	tasks = append(tasks, task)
	if err := r.col.persist(tasks); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task types.Task) (types.Task, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	tasks, err := r.col.load()
	if err != nil {
		return types.Task{}, err
	}
	for i, existing := range tasks {
		if existing.ID != task.ID {
			continue
		}
		tasks[i] = task
		if err := r.col.persist(tasks); err != nil {
			return types.Task{}, err
		}
		return task, nil
	}
	return types.Task{}, ErrNotFound
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	tasks, err := r.col.load()
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID != id {
			continue
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		return r.col.persist(tasks)
	}
	return ErrNotFound
}
