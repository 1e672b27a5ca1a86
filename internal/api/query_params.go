package api

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// ParseListQuery translates a flat set of request query parameters into a
// structured store.ListQuery. It is total: malformed input never produces an
// error, it degrades to the query's defaults instead.
//
//   - filter comes from "where", falling back to "filter", falling back to
//     the empty (match-all) document; malformed JSON takes the fallback
//   - "sort" and "select" are parsed the same permissive way and applied by
//     the stores only when non-empty
//   - "skip" and "limit" are unset (nil) when absent or non-numeric
//   - "count" equal to "true", case-insensitively, requests a count
func ParseListQuery(values url.Values) store.ListQuery {
	return store.ListQuery{
		Filter:     parseDocument(values.Get("where"), parseDocument(values.Get("filter"), bson.D{})),
		Sort:       parseDocument(values.Get("sort"), bson.D{}),
		Projection: parseDocument(values.Get("select"), bson.D{}),
		Skip:       parseInt(values.Get("skip")),
		Limit:      parseInt(values.Get("limit")),
		CountOnly:  strings.EqualFold(values.Get("count"), "true"),
	}
}

// parseDocument parses a JSON document from raw query-parameter text into an
// order-preserving bson.D. Absent or malformed input yields the fallback.
func parseDocument(raw string, fallback bson.D) bson.D {
	if raw == "" {
		return fallback
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON([]byte(raw), false, &doc); err != nil {
		return fallback
	}
	return doc
}

// parseInt parses an integer query parameter. Absent or non-numeric input
// yields nil ("unset"), which is distinct from zero.
func parseInt(raw string) *int64 {
	if raw == "" {
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
