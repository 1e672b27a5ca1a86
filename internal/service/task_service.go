package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskService provides task CRUD operations plus the assignment side of the
// task/user integrity protocol.
type TaskService interface {
	// ListTasks retrieves the tasks matching the query.
	ListTasks(ctx context.Context, q store.ListQuery) ([]domain.Task, error)

	// CountTasks returns the number of tasks matching the query.
	CountTasks(ctx context.Context, q store.ListQuery) (int64, error)

	// GetTask retrieves a task by its id.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask inserts a new task. If the task is assigned and incomplete,
	// its id is added to the assignee's pendingTasks set.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// UpdateTask applies the partial update to the task and reconciles the
	// pendingTasks sets of the old and new assignees.
	UpdateTask(ctx context.Context, id string, set bson.D) (*domain.Task, error)

	// DeleteTask removes the task and, if it was assigned, removes its id
	// from the assignee's pendingTasks set.
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, userStore store.UserStore, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With("component", "task_service"),
	}
}

// ListTasks retrieves the tasks matching the query.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
	return s.taskStore.List(ctx, q)
}

// CountTasks returns the number of tasks matching the query.
func (s *TaskServiceImpl) CountTasks(ctx context.Context, q store.ListQuery) (int64, error) {
	return s.taskStore.Count(ctx, q)
}

// GetTask retrieves a task by its id.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, id)
}

// CreateTask inserts the task and runs the create side of the integrity
// protocol. A failing pendingTasks write fails the whole operation even
// though the task itself was already inserted; there is no rollback.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	if created.Assigned() && !created.Completed {
		if err := s.userStore.AddPendingTask(ctx, created.AssignedUser, created.ID.Hex()); err != nil {
			s.logger.Error("failed to add pending task after create",
				"error", err,
				"task_id", created.ID.Hex(),
				"user_id", created.AssignedUser)
			return nil, fmt.Errorf("failed to sync pending tasks: %w", err)
		}
	}

	s.logger.Debug("task created",
		"task_id", created.ID.Hex(),
		"assigned_user", created.AssignedUser)
	return created, nil
}

// UpdateTask applies the partial update and runs the reassignment protocol,
// comparing the assignment state before and after the write:
//
//   - the previous assignee loses the task id when the task is now
//     unassigned or assigned to someone else;
//   - the current assignee gains the task id when the task is incomplete.
//
// A task completed without changing assignee deliberately keeps its stale
// pendingTasks entry; callers depend on that observable behavior.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
	old, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.taskStore.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}

	if old.Assigned() && (!updated.Assigned() || updated.AssignedUser != old.AssignedUser) {
		if err := s.userStore.RemovePendingTask(ctx, old.AssignedUser, old.ID.Hex()); err != nil {
			s.logger.Error("failed to remove pending task from previous assignee",
				"error", err,
				"task_id", id,
				"user_id", old.AssignedUser)
			return nil, fmt.Errorf("failed to sync pending tasks: %w", err)
		}
	}

	if updated.Assigned() && !updated.Completed {
		if err := s.userStore.AddPendingTask(ctx, updated.AssignedUser, updated.ID.Hex()); err != nil {
			s.logger.Error("failed to add pending task to assignee",
				"error", err,
				"task_id", id,
				"user_id", updated.AssignedUser)
			return nil, fmt.Errorf("failed to sync pending tasks: %w", err)
		}
	}

	s.logger.Debug("task updated",
		"task_id", id,
		"old_assignee", old.AssignedUser,
		"new_assignee", updated.AssignedUser)
	return updated, nil
}

// DeleteTask removes the task and runs the delete side of the integrity
// protocol.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	deleted, err := s.taskStore.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if deleted.Assigned() {
		if err := s.userStore.RemovePendingTask(ctx, deleted.AssignedUser, deleted.ID.Hex()); err != nil {
			s.logger.Error("failed to remove pending task after delete",
				"error", err,
				"task_id", id,
				"user_id", deleted.AssignedUser)
			return nil, fmt.Errorf("failed to sync pending tasks: %w", err)
		}
	}

	s.logger.Debug("task deleted",
		"task_id", id,
		"assigned_user", deleted.AssignedUser)
	return deleted, nil
}
