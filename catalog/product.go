// Package catalog provides the product record and the command and query
// handlers operating on a shared product store.
package catalog

import "context"

// Product is a stored catalog record. Identifiers are caller-assigned; the
// store enforces no uniqueness, so duplicate identifiers are stored as given.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store is the product persistence the handlers operate on. The handlers do
// not own the store: it is created once at process start and shared by
// reference. *store.Memory[Product] and *store.Redis[Product] both satisfy it.
type Store interface {
	Add(ctx context.Context, p Product) error
	List(ctx context.Context) ([]Product, error)
}
