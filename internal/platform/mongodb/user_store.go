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

// MongoUserStore implements the store.UserStore interface
// using a MongoDB collection as the storage backend.
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore creates a new MongoDB implementation of the UserStore
// interface. It accepts a database handle that should be initialized and
// managed by the caller.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{
		coll: db.Collection(usersCollection),
	}
}

// Ensure MongoUserStore implements store.UserStore interface
var _ store.UserStore = (*MongoUserStore)(nil)

// List implements store.UserStore.List
func (s *MongoUserStore) List(ctx context.Context, q store.ListQuery) ([]domain.User, error) {
	cursor, err := s.coll.Find(ctx, filterOf(q), findOptions(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Count implements store.UserStore.Count
func (s *MongoUserStore) Count(ctx context.Context, q store.ListQuery) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, filterOf(q), countOptions(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Normalize()

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// Update implements store.UserStore.Update
// An empty update document degenerates to a plain fetch, since the driver
// rejects an empty $set.
func (s *MongoUserStore) Update(ctx context.Context, id string, set bson.D) (*domain.User, error) {
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.User
	err = s.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

// Delete implements store.UserStore.Delete
func (s *MongoUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var deleted domain.User
	err = s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &deleted, nil
}

// AddPendingTask implements store.UserStore.AddPendingTask
// The $addToSet operator gives the add its set semantics: repeating the call
// for the same task id leaves a single entry.
func (s *MongoUserStore) AddPendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	_, err = s.coll.UpdateOne(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "pendingTasks", Value: taskID}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to add pending task %s to user %s: %w", taskID, userID, err)
	}
	return nil
}

// RemovePendingTask implements store.UserStore.RemovePendingTask
func (s *MongoUserStore) RemovePendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	_, err = s.coll.UpdateOne(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "pendingTasks", Value: taskID}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove pending task %s from user %s: %w", taskID, userID, err)
	}
	return nil
}
