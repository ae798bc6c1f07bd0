// Package mpmc provides a bounded channel backend on top of the lock-free
// multi-producer multi-consumer queue of xsync. Send blocks while the queue
// is full.
package mpmc

import (
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v2"

	"github.com/kakao/chanbench/pkg/channel"
)

const (
	Kind = "mpmc"

	DefaultCapacity = 1024
)

// endOfStream is enqueued once, after the last sender handle is released.
// The queue is FIFO, so every message sent before it has been dequeued when
// the receiver sees it.
type endOfStream struct{}

// New is a channel.Factory.
func New(cfg channel.Config) (channel.Sender, channel.Receiver, error) {
	capacity := cfg.Capacity
	if capacity < 0 {
		return nil, nil, errors.Wrapf(channel.ErrInvalidConfig, "mpmc: capacity %d", capacity)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	q := xsync.NewMPMCQueue(capacity)
	s := &sender{
		Handle: channel.NewHandles(func() { q.Enqueue(endOfStream{}) }),
		q:      q,
	}
	return s, &receiver{q: q}, nil
}

type sender struct {
	*channel.Handle
	q *xsync.MPMCQueue
}

var _ channel.Sender = (*sender)(nil)

func (s *sender) Send(msg channel.Message) error {
	if s.Released() {
		return errors.WithStack(channel.ErrClosed)
	}
	s.q.Enqueue(msg)
	return nil
}

func (s *sender) Clone() (channel.Sender, error) {
	h, err := s.Acquire()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &sender{Handle: h, q: s.q}, nil
}

type receiver struct {
	q      *xsync.MPMCQueue
	closed bool
}

var _ channel.Receiver = (*receiver)(nil)

func (r *receiver) Recv() (channel.Message, error) {
	if r.closed {
		return channel.Message{}, errors.WithStack(channel.ErrClosed)
	}
	switch item := r.q.Dequeue().(type) {
	case channel.Message:
		return item, nil
	case endOfStream:
		r.closed = true
		return channel.Message{}, errors.WithStack(channel.ErrClosed)
	default:
		return channel.Message{}, errors.Errorf("mpmc: unexpected item %T", item)
	}
}
