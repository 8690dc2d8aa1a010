package store

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-memory Store.
// It lives for the process lifetime and holds records in insertion order.
// No uniqueness or schema checks are applied; duplicates are stored as given.
type Memory[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewMemory creates a Memory store, optionally pre-seeded. The seed is
// copied, so the caller's slice stays independent of the store.
func NewMemory[T any](seed ...T) *Memory[T] {
	s := &Memory[T]{}
	if len(seed) > 0 {
		s.items = make([]T, len(seed))
		copy(s.items, seed)
	}
	return s
}

// Add appends item. A canceled context aborts before any mutation; once the
// lock is taken the append is atomic with respect to List.
func (s *Memory[T]) Add(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return nil
}

// List returns a copy of the current records. Mutating the returned slice
// does not affect the store.
func (s *Memory[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Len reports the number of stored records.
func (s *Memory[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ Store[int] = (*Memory[int])(nil)
