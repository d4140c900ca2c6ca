// Package sema provides a counting semaphore used as the blocking primitive
// behind the mailbox channel types.
package sema

import "sync"

// Semaphore is a counting semaphore. Acquire blocks while the count is zero;
// Release increments the count and wakes one waiter. Unlike a weighted
// semaphore, the count may grow past its initial value, which is what lets
// it double as a pure signal counter (initial count zero).
type Semaphore struct {
	mu    sync.Mutex
	cond  sync.Cond
	count int
}

// New creates a semaphore with the given initial count.
// Panics if initial is negative.
func New(initial int) *Semaphore {
	if initial < 0 {
		panic("sema: negative initial count")
	}
	s := &Semaphore{count: initial}
	s.cond.L = &s.mu
	return s
}

// Acquire decrements the count, blocking until it is positive.
func (s *Semaphore) Acquire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
}

// Release increments the count and wakes one blocked Acquire, if any.
func (s *Semaphore) Release() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	s.cond.Signal()
}

// Count returns the current count. It is a snapshot and may be stale by the
// time the caller looks at it.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
