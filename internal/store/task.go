package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List retrieves the tasks matching the query, honoring its sort,
	// projection, skip and limit settings.
	List(ctx context.Context, q ListQuery) ([]domain.Task, error)

	// Count returns the number of tasks matching the query. Skip and limit
	// are applied to the count, mirroring a list call with the same query.
	Count(ctx context.Context, q ListQuery) (int64, error)

	// GetByID retrieves a task by its hex identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Create inserts a new task and returns it with its assigned identifier.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Update applies the given partial update document to the task and
	// returns the post-update record.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, set bson.D) (*domain.Task, error)

	// Delete removes a task by id and returns the deleted record.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) (*domain.Task, error)

	// UnassignUser clears the assignment on every incomplete task currently
	// assigned to the given user. Completed tasks keep their assignment.
	UnassignUser(ctx context.Context, userID string) error
}
