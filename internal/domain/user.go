package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common validation errors for User
var (
	ErrEmptyUserName  = errors.New("user name cannot be empty")
	ErrEmptyUserEmail = errors.New("user email cannot be empty")
)

// User represents a registered user that tasks can be assigned to.
// PendingTasks is the denormalized inverse of Task.AssignedUser: the set of
// hex ids of this user's currently assigned, incomplete tasks. It is
// maintained reactively by the services on task and user writes, not
// recomputed on read, so it can go stale on partial failures.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name"          json:"name"`
	Email        string             `bson:"email"         json:"email"`
	PendingTasks []string           `bson:"pendingTasks"  json:"pendingTasks"`
}

// Normalize applies the collection's schema defaults to a user about to be
// inserted: a nil pending-task list becomes the empty set, so it serializes
// as [] rather than null.
func (u *User) Normalize() {
	if u.PendingTasks == nil {
		u.PendingTasks = []string{}
	}
}

// Validate checks if the User has valid data.
// Returns an error if any required field is missing.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyUserEmail
	}
	return nil
}
