package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MongoTaskStore implements the store.TaskStore interface
// using a MongoDB collection as the storage backend.
type MongoTaskStore struct {
	coll *mongo.Collection
}

// NewMongoTaskStore creates a new MongoDB implementation of the TaskStore
// interface. It accepts a database handle that should be initialized and
// managed by the caller.
func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{
		coll: db.Collection(tasksCollection),
	}
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// List implements store.TaskStore.List
func (s *MongoTaskStore) List(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
	cursor, err := s.coll.Find(ctx, filterOf(q), findOptions(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := []domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *MongoTaskStore) Count(ctx context.Context, q store.ListQuery) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, filterOf(q), countOptions(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *MongoTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var task domain.Task
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.Normalize()

	res, err := s.coll.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return task, nil
}

// Update implements store.TaskStore.Update
// An empty update document degenerates to a plain fetch, since the driver
// rejects an empty $set.
func (s *MongoTaskStore) Update(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Task
	err = s.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &updated, nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var deleted domain.Task
	err = s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return &deleted, nil
}

// UnassignUser implements store.TaskStore.UnassignUser
func (s *MongoTaskStore) UnassignUser(ctx context.Context, userID string) error {
	_, err := s.coll.UpdateMany(
		ctx,
		bson.D{
			{Key: "assignedUser", Value: userID},
			{Key: "completed", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "assignedUser", Value: ""},
			{Key: "assignedUserName", Value: domain.UnassignedUserName},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to unassign tasks for user %s: %w", userID, err)
	}
	return nil
}
