package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UserService provides user CRUD operations plus the user side of the
// task/user integrity protocol.
type UserService interface {
	// ListUsers retrieves the users matching the query.
	ListUsers(ctx context.Context, q store.ListQuery) ([]domain.User, error)

	// CountUsers returns the number of users matching the query.
	CountUsers(ctx context.Context, q store.ListQuery) (int64, error)

	// GetUser retrieves a user by its id.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	// UpdateUser applies the partial update to the user and returns the
	// post-update record. It performs no task reconciliation: a user's own
	// record changing does not touch task assignments, only delete does.
	UpdateUser(ctx context.Context, id string, set bson.D) (*domain.User, error)

	// DeleteUser removes the user, then clears the assignment on every
	// incomplete task that referenced it.
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger.With("component", "user_service"),
	}
}

// ListUsers retrieves the users matching the query.
func (s *UserServiceImpl) ListUsers(ctx context.Context, q store.ListQuery) ([]domain.User, error) {
	return s.userStore.List(ctx, q)
}

// CountUsers returns the number of users matching the query.
func (s *UserServiceImpl) CountUsers(ctx context.Context, q store.ListQuery) (int64, error) {
	return s.userStore.Count(ctx, q)
}

// GetUser retrieves a user by its id.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// CreateUser inserts a new user.
func (s *UserServiceImpl) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user created", "user_id", created.ID.Hex(), "email", created.Email)
	return created, nil
}

// UpdateUser applies the partial update to the user.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, set bson.D) (*domain.User, error) {
	return s.userStore.Update(ctx, id, set)
}

// DeleteUser removes the user and bulk-unassigns its incomplete tasks. The
// user record is already gone when the unassign runs, so a failure there
// leaves orphaned assignedUser references (accepted, non-transactional
// design). No pendingTasks cleanup is needed since the set lived on the
// deleted record.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := s.userStore.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.UnassignUser(ctx, id); err != nil {
		s.logger.Error("failed to unassign tasks after user delete",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to unassign tasks: %w", err)
	}

	s.logger.Debug("user deleted", "user_id", id)
	return deleted, nil
}
