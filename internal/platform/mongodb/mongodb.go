package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Collection names used by the stores.
const (
	tasksCollection = "tasks"
	usersCollection = "users"
)

// Connect establishes a client connection to the MongoDB deployment at the
// given URI and verifies it with a ping. The caller owns the returned client
// and is responsible for disconnecting it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// parseObjectID converts a hex identifier from a URL path into the store's
// native id format. Malformed input is reported as ErrInvalidID so handlers
// can surface it through their generic failure path.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// filterOf returns the query's filter, substituting the match-all document
// for a nil filter since the driver rejects nil.
func filterOf(q store.ListQuery) bson.D {
	if q.Filter == nil {
		return bson.D{}
	}
	return q.Filter
}

// findOptions translates a ListQuery into driver find options. Sort and
// projection are applied only when non-empty, matching the translator's
// permissive contract.
func findOptions(q store.ListQuery) *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}
	if q.Skip != nil {
		opts.SetSkip(*q.Skip)
	}
	if q.Limit != nil {
		opts.SetLimit(*q.Limit)
	}
	return opts
}

// countOptions translates a ListQuery into driver count options. Skip and
// limit carry over so a count mirrors a list call with the same query.
func countOptions(q store.ListQuery) *options.CountOptions {
	opts := options.Count()
	if q.Skip != nil {
		opts.SetSkip(*q.Skip)
	}
	if q.Limit != nil {
		opts.SetLimit(*q.Limit)
	}
	return opts
}
