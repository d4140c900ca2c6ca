// Package fifo provides a generic mutex-guarded FIFO store.
package fifo

import "sync"

// Store is a thread-safe first-in-first-out sequence. The mailbox channel
// types own their Store exclusively; its internal mutex is what makes buffer
// mutation atomic independent of the surrounding admission and capacity
// coordination.
type Store[T any] struct {
	mu    sync.Mutex
	items []T
}

// New creates an empty store.
func New[T any]() *Store[T] {
	return &Store[T]{
		items: make([]T, 0),
	}
}

// Push appends an item to the tail.
func (s *Store[T]) Push(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Pop removes and returns the head item. The second return value is false
// if the store is empty.
func (s *Store[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	item := s.items[0]
	s.items = s.items[1:]
	return item, true
}

// Empty returns true if the store has no items.
func (s *Store[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Len returns the number of items in the store.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
