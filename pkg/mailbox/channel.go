package mailbox

import (
	"errors"
	"sync"

	"github.com/OCAP2/mailbox/internal/fifo"
	"github.com/OCAP2/mailbox/internal/sema"
)

// ErrNegativeCapacity is returned when constructing a channel with a
// negative capacity. This is a programmer error, not a runtime condition.
var ErrNegativeCapacity = errors.New("mailbox: negative capacity")

// Channel is a bounded blocking FIFO channel. The zero value is not usable;
// construct with New.
//
// Coordination is split across five independent resources:
//
//   - sendTurn serializes senders, so one send at a time validates capacity
//     and appends.
//   - slots is the capacity gate, initialized to capacity+1. A sender takes
//     a slot before appending; a receiver returns it after removing. The +1
//     is the transient in-flight slot that lets a sender commit its message
//     before blocking for receipt.
//   - the buffer's own mutex makes append/remove atomic.
//   - avail counts deliverable messages, starting at zero. Every send
//     releases it after appending; every receive acquires it before
//     removing.
//   - receipts starts at capacity. A sender acquires it after appending and
//     a receiver releases it after removing, so a send at or beyond capacity
//     blocks until its message has actually been picked up. At capacity zero
//     this degenerates to pure rendezvous.
type Channel[T any] struct {
	capacity int
	buf      *fifo.Store[T]

	sendTurn sync.Mutex
	recvTurn sync.Mutex

	slots    *sema.Semaphore
	avail    *sema.Semaphore
	receipts *sema.Semaphore
}

// New creates a channel with the given capacity. Capacity zero means sends
// rendezvous synchronously with receives. Returns ErrNegativeCapacity for
// negative capacities.
func New[T any](capacity int) (*Channel[T], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Channel[T]{
		capacity: capacity,
		buf:      fifo.New[T](),
		slots:    sema.New(capacity + 1),
		avail:    sema.New(0),
		receipts: sema.New(capacity),
	}, nil
}

// Send delivers v to the channel. It blocks until the channel has room and,
// when the channel is at or beyond capacity, until the message has been
// taken by a receiver. There is no way for Send to fail; it only ever
// blocks.
func (c *Channel[T]) Send(v T) {
	c.sendTurn.Lock()
	defer c.sendTurn.Unlock()

	c.slots.Acquire()
	c.buf.Push(v)
	c.avail.Release()
	c.receipts.Acquire()
}

// Receive blocks until a message is available, then dequeues and returns the
// earliest-sent message. A Receive with no matching Send blocks forever;
// use Closable where consumers need end-of-stream detection.
func (c *Channel[T]) Receive() T {
	c.recvTurn.Lock()
	defer c.recvTurn.Unlock()

	c.avail.Acquire()
	v, _ := c.buf.Pop()
	c.receipts.Release()
	c.slots.Release()
	return v
}

// Len returns the number of messages currently buffered, including any
// message committed by a sender still blocked awaiting receipt. It is a
// snapshot for monitoring, not a synchronization primitive.
func (c *Channel[T]) Len() int {
	return c.buf.Len()
}

// Cap returns the capacity the channel was constructed with.
func (c *Channel[T]) Cap() int {
	return c.capacity
}
