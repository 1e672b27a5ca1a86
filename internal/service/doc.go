// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// The one piece of genuine cross-entity logic here is the referential
// integrity protocol between tasks and users: task writes keep the owning
// user's pendingTasks set consistent, and a user delete unassigns the user's
// incomplete tasks. The protocol is reactive and non-transactional; each
// synchronization step is a best-effort store write with no rollback of the
// primary write that already succeeded.
package service
