package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List retrieves the users matching the query, honoring its sort,
	// projection, skip and limit settings.
	List(ctx context.Context, q ListQuery) ([]domain.User, error)

	// Count returns the number of users matching the query.
	Count(ctx context.Context, q ListQuery) (int64, error)

	// GetByID retrieves a user by its hex identifier.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create inserts a new user and returns it with its assigned identifier.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update applies the given partial update document to the user and
	// returns the post-update record.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id string, set bson.D) (*domain.User, error)

	// Delete removes a user by id and returns the deleted record.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) (*domain.User, error)

	// AddPendingTask adds the task id to the user's pendingTasks set.
	// The add is idempotent; a task id already present is not duplicated.
	// A nonexistent user id matches no document and is not an error.
	AddPendingTask(ctx context.Context, userID, taskID string) error

	// RemovePendingTask removes the task id from the user's pendingTasks set.
	// A nonexistent user id matches no document and is not an error.
	RemovePendingTask(ctx context.Context, userID, taskID string) error
}
