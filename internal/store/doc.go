// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document database from the
// application's core logic, allowing the handlers and services to remain
// independent of the concrete driver.
package store
