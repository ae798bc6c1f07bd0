// Package gochan provides channel backends built on buffered Go channels.
//
// Both backends share the same buffer and close semantics and differ only in
// their backpressure policy: a bounded channel blocks Send while the buffer
// is full, a nonblocking channel fails it with channel.ErrFull.
package gochan

import (
	"github.com/pkg/errors"

	"github.com/kakao/chanbench/pkg/channel"
)

const (
	BoundedKind     = "bounded"
	NonblockingKind = "nonblocking"

	DefaultCapacity = 1024
)

// NewBounded is a channel.Factory for channels whose Send blocks while the
// buffer is full.
func NewBounded(cfg channel.Config) (channel.Sender, channel.Receiver, error) {
	return newChannel(cfg, true)
}

// NewNonblocking is a channel.Factory for channels whose Send fails with
// channel.ErrFull while the buffer is full.
func NewNonblocking(cfg channel.Config) (channel.Sender, channel.Receiver, error) {
	return newChannel(cfg, false)
}

func newChannel(cfg channel.Config, blocking bool) (channel.Sender, channel.Receiver, error) {
	capacity := cfg.Capacity
	if capacity < 0 {
		return nil, nil, errors.Wrapf(channel.ErrInvalidConfig, "gochan: capacity %d", capacity)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	c := make(chan channel.Message, capacity)
	s := &sender{
		Handle:   channel.NewHandles(func() { close(c) }),
		c:        c,
		blocking: blocking,
	}
	return s, receiver(c), nil
}

type sender struct {
	*channel.Handle
	c        chan<- channel.Message
	blocking bool
}

var _ channel.Sender = (*sender)(nil)

func (s *sender) Send(msg channel.Message) error {
	// The underlying channel is closed only after every handle has been
	// released, so sending through an unreleased handle never panics.
	if s.Released() {
		return errors.WithStack(channel.ErrClosed)
	}
	if s.blocking {
		s.c <- msg
		return nil
	}
	select {
	case s.c <- msg:
		return nil
	default:
		return errors.WithStack(channel.ErrFull)
	}
}

func (s *sender) Clone() (channel.Sender, error) {
	h, err := s.Acquire()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &sender{Handle: h, c: s.c, blocking: s.blocking}, nil
}

type receiver <-chan channel.Message

var _ channel.Receiver = receiver(nil)

func (r receiver) Recv() (channel.Message, error) {
	msg, ok := <-r
	if !ok {
		return channel.Message{}, errors.WithStack(channel.ErrClosed)
	}
	return msg, nil
}
