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

// CreateUserRequest represents the request body for creating a new user
type CreateUserRequest struct {
	Name         string   `json:"name"  validate:"required"`
	Email        string   `json:"email" validate:"required"`
	PendingTasks []string `json:"pendingTasks"`
}

// UpdateUserRequest represents the request body for a partial user update.
// Pointer fields distinguish "absent" from a zero value.
type UpdateUserRequest struct {
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	PendingTasks *[]string `json:"pendingTasks"`
}

// setDocument builds the partial update document from the fields present in
// the request body.
func (req *UpdateUserRequest) setDocument() bson.D {
	set := bson.D{}
	if req.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *req.Name})
	}
	if req.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *req.Email})
	}
	if req.PendingTasks != nil {
		set = append(set, bson.E{Key: "pendingTasks", Value: *req.PendingTasks})
	}
	return set
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users requests.
// Unlike the task listing, an unset limit means unlimited.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query())

	if q.CountOnly {
		count, err := h.userService.CountUsers(r.Context(), q)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Query Error", err)
			return
		}
		shared.Respond(w, r, http.StatusOK, "OK", count)
		return
	}

	users, err := h.userService.ListUsers(r.Context(), q)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query Error", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "OK", users)
}

// GetUser handles GET /users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetUser(r.Context(), id)
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Error", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "OK", user)
}

// CreateUser handles POST /users requests.
// Name and email are required and checked before any store call.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User creation failed", err)
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.Respond(w, r, http.StatusBadRequest, "Name and email required", nil)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PendingTasks: req.PendingTasks,
	}

	created, err := h.userService.CreateUser(r.Context(), user)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User creation failed", err)
		return
	}
	shared.Respond(w, r, http.StatusCreated, "User created", created)
}

// UpdateUser handles PUT /users/{id} requests.
// The update is partial and performs no task reconciliation: a user's own
// record changing does not touch task assignments, only delete does.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Update failed", err)
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), id, req.setDocument())
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Update failed", err)
		return
	}
	shared.Respond(w, r, http.StatusOK, "User updated", updated)
}

// DeleteUser handles DELETE /users/{id} requests.
// After the user record is removed, every incomplete task assigned to it is
// bulk-unassigned; completed tasks keep their assignment.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := h.userService.DeleteUser(r.Context(), id)
	if store.IsNotFoundError(err) {
		shared.Respond(w, r, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Delete failed", err)
		return
	}
	shared.Respond(w, r, http.StatusNoContent, "User deleted", nil)
}
