package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TaskHandler serves the /tasks endpoints.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler. A nil logger falls back to slog.Default().
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{userId}", h.ListTasks)
	r.Put("/tasks/reorder/{userId}", h.ReorderTasks)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
}

// CreateTask handles POST /tasks and responds 201 with the stored task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		UserID:      req.UserID,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// ListTasks handles GET /tasks/{userId}.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	tasks, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTask handles PUT /tasks/{id}. An unknown id responds 200 with null.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handleTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if task == nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("update target not found",
			slog.String("task_id", id.String()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ReorderTasks handles PUT /tasks/reorder/{userId}.
// A batch that changes nothing is answered with 400 and success:false.
func (h *TaskHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req ReorderTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.tasks.Reorder(r.Context(), userID, req.Tasks); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r)
}

// DeleteTask handles DELETE /tasks/{id}. Deleting an unknown id succeeds.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handleTaskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r)
}
