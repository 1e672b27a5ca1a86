// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the internal application services, translating HTTP concerns to business
// operations.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// defaultTaskListLimit caps a task listing when the request carries no limit
// parameter. The user listing has no such default.
const defaultTaskListLimit = 100

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Name             string `json:"name"             validate:"required"`
	Deadline         string `json:"deadline"         validate:"required"`
	Completed        bool   `json:"completed"`
	AssignedUser     string `json:"assignedUser"`
	AssignedUserName string `json:"assignedUserName"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Pointer fields distinguish "absent" from a zero value: only the fields
// present in the request body make it into the update document.
type UpdateTaskRequest struct {
	Name             *string `json:"name"`
	Deadline         *string `json:"deadline"`
	Completed        *bool   `json:"completed"`
	AssignedUser     *string `json:"assignedUser"`
	AssignedUserName *string `json:"assignedUserName"`
}

// setDocument builds the partial update document from the fields present in
// the request body.
func (req *UpdateTaskRequest) setDocument() bson.D {
	set := bson.D{}
	if req.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *req.Name})
	}
	if req.Deadline != nil {
		set = append(set, bson.E{Key: "deadline", Value: *req.Deadline})
	}
	if req.Completed != nil {
		set = append(set, bson.E{Key: "completed", Value: *req.Completed})
	}
	if req.AssignedUser != nil {
		set = append(set, bson.E{Key: "assignedUser", Value: *req.AssignedUser})
	}
	if req.AssignedUserName != nil {
		set = append(set, bson.E{Key: "assignedUserName", Value: *req.AssignedUserName})
	}
	return set
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
// It returns the filtered, sorted, projected and paginated task list, or the
// matching count when the count parameter is set. An unset limit defaults to
// 100 results.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query()).WithDefaultLimit(defaultTaskListLimit)

	if q.CountOnly {
		count, err := h.taskService.CountTasks(r.Context(), q)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Query Error", err)
			return
		}
		shared.Respond(w, r, http.StatusOK, "OK", count)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), q)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query Error", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "OK", tasks)
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskService.GetTask(r.Context(), id)
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "Task not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Error", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "OK", task)
}

// CreateTask handles POST /tasks requests.
// Name and deadline are required and checked before any store call.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task creation failed", err)
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.Respond(w, r, http.StatusBadRequest, "Name and deadline required", nil)
		return
	}

	task := &domain.Task{
		Name:             req.Name,
		Deadline:         req.Deadline,
		Completed:        req.Completed,
		AssignedUser:     req.AssignedUser,
		AssignedUserName: req.AssignedUserName,
	}

	created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task creation failed", err)
		return
	}
	shared.Respond(w, r, http.StatusCreated, "Task created", created)
}

// UpdateTask handles PUT /tasks/{id} requests.
// The update is partial: only fields present in the body are written. The
// service reconciles the pendingTasks sets of the old and new assignees.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Update failed", err)
		return
	}

	updated, err := h.taskService.UpdateTask(r.Context(), id, req.setDocument())
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "Task not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Update failed", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "Task updated", updated)
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := h.taskService.DeleteTask(r.Context(), id)
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "Task not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Delete failed", err)
		return
	}
	shared.Respond(w, r, http.StatusNoContent, "Task deleted", nil)
}
