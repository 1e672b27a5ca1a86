// Package mongodb provides MongoDB implementations of the interfaces defined
// in the store package. It translates the structured ListQuery descriptor
// into driver find/count options and maps driver errors to the store's
// sentinel errors.
package mongodb
