package store

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery is the structured read-query descriptor produced by the API
// layer's query-parameter translator and consumed by the stores. A zero
// ListQuery matches every document in the collection.
type ListQuery struct {
	// Filter selects which documents match. Empty means match all.
	Filter bson.D

	// Sort orders the result set. Applied only when non-empty.
	Sort bson.D

	// Projection restricts the returned fields. Applied only when non-empty.
	Projection bson.D

	// Skip and Limit paginate the result set. A nil pointer means "unset",
	// which is distinct from zero: callers decide what an unset limit means
	// (the task list defaults it, the user list leaves it open).
	Skip  *int64
	Limit *int64

	// CountOnly requests the matching document count instead of the documents.
	CountOnly bool
}

// WithDefaultLimit returns a copy of q with Limit set to n when unset.
func (q ListQuery) WithDefaultLimit(n int64) ListQuery {
	if q.Limit == nil {
		q.Limit = &n
	}
	return q
}
