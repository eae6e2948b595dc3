package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/types"
)

// TaskHandler provides HTTP handlers for tasks.
type TaskHandler struct {
	taskService *services.TaskService
	userService *services.UserService
}

// NewTaskHandler constructs a handler with the provided services.
func NewTaskHandler(taskService *services.TaskService, userService *services.UserService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
	}
}

// TaskRouter registers task routes on the given router. All routes
// require authentication; the acting identity is derived per request.
func TaskRouter(
	r chi.Router,
	taskService *services.TaskService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewTaskHandler(taskService, userService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListTasks)
	r.Post("/", handler.CreateTask)
	r.Get("/stats", handler.Stats)
	r.Route("/{taskID}", func(r chi.Router) {
		r.Put("/", handler.UpdateTask)
		r.Delete("/", handler.DeleteTask)
		r.Post("/complete", handler.CompleteTask)
	})
}

// TaskView is a task together with its derived display status: pending
// tasks past their due date show as overdue without the stored status
// changing.
type TaskView struct {
	types.Task
	DisplayStatus types.TaskStatus `json:"status_exibido"`
}

// TaskListResponse is the task listing payload.
type TaskListResponse struct {
	Items []TaskView `json:"items"`
	Total int        `json:"total"`
}

// ListTasks returns the caller's tasks. With ?all=true the full,
// unscoped collection is returned (the admin view: any authenticated
// caller may ask for it).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	scopeToOwner := r.URL.Query().Get("all") != "true"
	tasks, err := h.taskService.List(r.Context(), actor, scopeToOwner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, TaskListResponse{Items: taskViews(tasks), Total: len(tasks)})
}

// CreateTask adds a new pending task owned by the caller.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	task, err := h.taskService.Create(r.Context(), actor, req.Title, req.Description, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDueDate):
			writeError(w, http.StatusBadRequest, "invalid due date, expected DD/MM/YYYY")
		case errors.Is(err, services.ErrMissingField):
			writeError(w, http.StatusBadRequest, "title is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create task")
		}
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask edits the given fields of a task; omitted fields keep their
// prior values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	task, err := h.taskService.Edit(r.Context(), actor, id, req.Title, req.Description, req.DueDate)
	if err != nil {
		h.writeTaskError(w, err, "failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// CompleteTask marks a task as concluded.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.Complete(r.Context(), actor, id)
	if err != nil {
		h.writeTaskError(w, err, "failed to complete task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.Delete(r.Context(), actor, id); err != nil {
		h.writeTaskError(w, err, "failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the caller's dashboard counters.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	stats, err := h.taskService.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

type CreateTaskRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	DueDate     string `json:"prazo"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"titulo"`
	Description *string `json:"descricao"`
	DueDate     *string `json:"prazo"`
}

// actor loads the authenticated user for the request, writing the error
// response itself when the identity cannot be resolved.
func (h *TaskHandler) actor(w http.ResponseWriter, r *http.Request) (types.User, bool) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return types.User{}, false
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return types.User{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return types.User{}, false
	}
	return user, true
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "task belongs to another user")
	case errors.Is(err, services.ErrInvalidDueDate):
		writeError(w, http.StatusBadRequest, "invalid due date, expected DD/MM/YYYY")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func parseTaskID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "taskID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid task id")
	}
	return id, nil
}

func taskViews(tasks []types.Task) []TaskView {
	now := time.Now()
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{Task: task, DisplayStatus: task.DisplayStatus(now)})
	}
	return views
}
