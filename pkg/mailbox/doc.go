// Package mailbox provides bounded, blocking, FIFO message channels for
// hand-off between concurrently running tasks.
//
// Two channel types are provided:
//
//   - [Channel]: a bounded blocking queue. Send blocks while the channel is
//     at capacity, Receive blocks until a message is available. A capacity of
//     zero gives synchronous rendezvous: Send does not return until a
//     receiver has taken the message.
//   - [Closable]: a Channel plus a terminal closed state. A single producer
//     calls Close exactly once when it is done sending; consumers use the
//     comma-ok Receive or All to drain remaining messages and then observe
//     end-of-stream instead of blocking forever.
//
// Messages are delivered strictly in the order their sends were admitted,
// even with multiple concurrent producers and consumers: concurrent sends
// are serialized against each other, as are concurrent receives, so the
// whole system behaves as one FIFO queue.
//
// # Blocking semantics
//
// All blocking is indefinite. There is no built-in timeout or cancellation;
// a caller that needs either must race the call against an external signal
// at a higher layer. In particular, a Send on a plain Channel with no
// corresponding Receive blocks forever. That is intentional synchronous
// channel semantics, not a defect; use Closable where consumers must be able
// to detect that no more messages are coming.
//
// A channel with goroutines blocked inside Send or Receive must not be
// discarded while they are blocked. This is a documented precondition, not
// something the implementation detects.
//
// # Basic usage
//
//	jobs, _ := mailbox.NewClosable[int](5)
//
//	go func() {
//		for i := 1; i <= 3; i++ {
//			jobs.Send(i)
//		}
//		jobs.Close()
//	}()
//
//	for job := range jobs.All() {
//		process(job)
//	}
//
// # Why not native channels
//
// Native Go channels conflate "closed" with "send panics", allow select
// across channels, and cap the observable buffer at exactly the declared
// capacity. The channel here keeps one extra in-flight slot so that a sender
// at capacity can commit its message and then block until the message has
// been picked up, which is what produces rendezvous semantics at capacity
// zero and send-blocks-until-room semantics above it. The coordination is
// built from counting semaphores and admission locks so each axis (sender
// turn, capacity, buffer mutation, delivery, receiver turn) is independent.
package mailbox
