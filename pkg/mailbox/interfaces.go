package mailbox

import "iter"

// Sender provides write access to a channel.
type Sender[T any] interface {
	Send(T)
}

// Receiver provides blocking read access to a channel that is never closed.
type Receiver[T any] interface {
	Receive() T
	Len() int
}

// StreamReceiver provides read access to a closable channel. Receive reports
// end-of-stream via its second return value once the channel is closed and
// drained; All iterates until end-of-stream.
type StreamReceiver[T any] interface {
	Receive() (T, bool)
	All() iter.Seq[T]
	Len() int
}

// Closer marks a channel that can be closed by its producer.
type Closer interface {
	Close()
}
