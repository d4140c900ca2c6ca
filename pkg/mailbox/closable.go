package mailbox

import (
	"iter"
	"sync"
	"sync/atomic"
)

// Closable is a bounded blocking FIFO channel with a terminal closed state.
// A single producer (or an externally coordinated producer group) calls
// Close exactly once after its final Send; consumers drain with Receive or
// All and observe end-of-stream once the channel is closed and empty.
//
// Closable deliberately does not expose the non-optional Receive of
// [Channel]: the two receive forms have distinct signatures, so calling the
// close-unaware form on a closable channel is a compile error rather than a
// runtime fault.
type Closable[T any] struct {
	ch     *Channel[T]
	closed atomic.Bool
	once   sync.Once
}

// NewClosable creates a closable channel with the given capacity. Capacity
// semantics match New. Returns ErrNegativeCapacity for negative capacities.
func NewClosable[T any](capacity int) (*Closable[T], error) {
	ch, err := New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &Closable[T]{ch: ch}, nil
}

// Send delivers v to the channel with the same blocking semantics as
// Channel.Send.
//
// Sending after Close is not rejected: close discipline is the producer's
// responsibility, since only the producer knows when it is done. A message
// sent after Close may or may not be observed by consumers.
func (c *Closable[T]) Send(v T) {
	c.ch.Send(v)
}

// Close marks the channel as closed and wakes a receiver blocked waiting
// for a message, so it promptly observes end-of-stream instead of hanging.
// Close is idempotent; repeated and concurrent calls are safe no-ops.
func (c *Closable[T]) Close() {
	c.once.Do(func() {
		c.closed.Store(true)
		// One extra availability token. Whichever receiver drains it at
		// end-of-stream puts it back, so every later receiver returns
		// promptly as well.
		c.ch.avail.Release()
	})
}

// Receive blocks until either a message is available, returning (msg, true),
// or the channel is closed and drained, returning (zero, false) without
// further blocking.
//
// The closed-and-empty check runs after waiting for a delivery or close
// signal, never by polling, so messages sent just before Close are neither
// lost nor reordered past end-of-stream.
func (c *Closable[T]) Receive() (T, bool) {
	c.ch.recvTurn.Lock()
	defer c.ch.recvTurn.Unlock()

	c.ch.avail.Acquire()
	if c.closed.Load() && c.ch.buf.Empty() {
		// Recycle the token for the next receiver.
		c.ch.avail.Release()
		var zero T
		return zero, false
	}
	v, _ := c.ch.buf.Pop()
	c.ch.receipts.Release()
	c.ch.slots.Release()
	return v, true
}

// All returns a single-pass iterator that yields messages until the channel
// is closed and drained. Iteration is not restartable: messages are consumed
// exactly once across the whole system, so a second range over the same
// channel only yields messages not taken by the first.
func (c *Closable[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := c.Receive()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Closed reports whether Close has been called. A false result may be stale
// immediately; it is intended for diagnostics, not coordination.
func (c *Closable[T]) Closed() bool {
	return c.closed.Load()
}

// Len returns the number of messages currently buffered.
func (c *Closable[T]) Len() int {
	return c.ch.Len()
}

// Cap returns the capacity the channel was constructed with.
func (c *Closable[T]) Cap() int {
	return c.ch.Cap()
}
