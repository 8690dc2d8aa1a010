// Package store provides append-only record stores shared by command and
// query handlers. The in-memory store is the default; the Redis store backs
// the same contract with an external list.
package store

import (
	"context"
	"errors"
)

// Store is an append-only collection of records.
type Store[T any] interface {
	// Add appends a record. Safe for concurrent use; a failed or canceled
	// Add leaves the store unchanged.
	Add(ctx context.Context, item T) error

	// List returns a point-in-time snapshot of all records in insertion
	// order. Callers own the returned slice.
	List(ctx context.Context) ([]T, error)
}

// ErrUnavailable is returned when a backing store cannot be reached.
// The in-memory store never returns it.
var ErrUnavailable = errors.New("store: unavailable")
