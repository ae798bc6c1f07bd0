// Package channel defines the capability set every benchmarked channel
// backend implements, and the registry that selects a backend by kind.
//
// A backend is constructed as a pair of one Sender and one Receiver.
// Producers obtain their own handles with Sender.Clone and release them with
// Sender.Close. Once every handle has been released and the buffered messages
// have been drained, Receiver.Recv returns ErrClosed. That error is the only
// end-of-stream signal consumers rely on.
package channel

//go:generate mockgen -self_package github.com/kakao/chanbench/pkg/channel -package channel -destination channel_mock.go . Sender,Receiver

import (
	"time"
)

// Message is a timestamped unit of work sent from a producer to the
// consumer. It must not be modified after it has been sent.
type Message struct {
	// SendTime is taken immediately before the message is sent. It carries
	// the monotonic clock reading of time.Now.
	SendTime time.Time
	// ProducerID identifies the producer that created the message.
	ProducerID int
	// Seq is the 0-based index of the message within its producer.
	Seq int
	// Payload is owned by the message; no other message aliases it.
	Payload []byte
}

// Sender is the producer side of a channel.
type Sender interface {
	// Send enqueues msg. It is safe to call concurrently on different
	// handles of the same channel. Bounded backends either block while the
	// channel is full or fail with ErrFull, depending on their policy.
	Send(msg Message) error

	// Clone returns a new handle to the same channel. The channel stays open
	// until every handle, including the cloned ones, has been closed.
	Clone() (Sender, error)

	// Close releases this handle. Closing a handle more than once has no
	// further effect.
	Close() error
}

// Receiver is the consumer side of a channel. Only one goroutine may call
// Recv at a time.
type Receiver interface {
	// Recv dequeues the next message. It blocks while the channel is empty
	// and at least one sender handle is alive, and returns ErrClosed once the
	// channel is empty and every sender handle has been released.
	Recv() (Message, error)
}

// Config is passed to a Factory when a channel is constructed.
type Config struct {
	// Capacity bounds the number of buffered messages for bounded backends.
	// Zero selects the backend's default. Unbounded backends ignore it.
	Capacity int
}

// Factory constructs a fresh channel and returns its first sender handle
// and its receiver.
type Factory func(cfg Config) (Sender, Receiver, error)
