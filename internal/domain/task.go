package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnassignedUserName is the display name a task carries when no user is
// assigned to it.
const UnassignedUserName = "unassigned"

// Common validation errors for Task
var (
	ErrEmptyTaskName     = errors.New("task name cannot be empty")
	ErrEmptyTaskDeadline = errors.New("task deadline cannot be empty")
)

// Task represents a unit of work that may be assigned to a single user.
// AssignedUser holds the hex id of the owning user, or the empty string
// when the task is unassigned; AssignedUserName is the denormalized display
// name kept alongside it. The relation is a soft reference: the store
// enforces no constraint between the two collections.
type Task struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"     json:"_id"`
	Name             string             `bson:"name"              json:"name"`
	Deadline         string             `bson:"deadline"          json:"deadline"`
	Completed        bool               `bson:"completed"         json:"completed"`
	AssignedUser     string             `bson:"assignedUser"      json:"assignedUser"`
	AssignedUserName string             `bson:"assignedUserName"  json:"assignedUserName"`
}

// Normalize applies the collection's schema defaults to a task about to be
// inserted: an absent display name becomes "unassigned".
func (t *Task) Normalize() {
	if t.AssignedUserName == "" {
		t.AssignedUserName = UnassignedUserName
	}
}

// Validate checks if the Task has valid data.
// Returns an error if any required field is missing.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if t.Deadline == "" {
		return ErrEmptyTaskDeadline
	}
	return nil
}

// Assigned reports whether the task currently references a user.
func (t *Task) Assigned() bool {
	return t.AssignedUser != ""
}
