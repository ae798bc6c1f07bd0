// Package unbounded provides a channel backend whose buffer grows without
// limit. Send never blocks.
package unbounded

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/kakao/chanbench/pkg/channel"
)

const Kind = "unbounded"

const initialQueueSize = 64

type queue struct {
	mu     sync.Mutex
	cv     *sync.Cond
	items  []channel.Message
	head   int
	closed bool
}

// New is a channel.Factory. The capacity of cfg is ignored.
func New(channel.Config) (channel.Sender, channel.Receiver, error) {
	q := &queue{items: make([]channel.Message, 0, initialQueueSize)}
	q.cv = sync.NewCond(&q.mu)
	s := &sender{
		Handle: channel.NewHandles(q.close),
		q:      q,
	}
	return s, &receiver{q: q}, nil
}

func (q *queue) push(msg channel.Message) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
	q.cv.Signal()
}

func (q *queue) pop() (channel.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.head == len(q.items) && !q.closed {
		q.cv.Wait()
	}
	if q.head == len(q.items) {
		return channel.Message{}, errors.WithStack(channel.ErrClosed)
	}
	msg := q.items[q.head]
	q.items[q.head] = channel.Message{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return msg, nil
}

func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cv.Broadcast()
}

type sender struct {
	*channel.Handle
	q *queue
}

var _ channel.Sender = (*sender)(nil)

func (s *sender) Send(msg channel.Message) error {
	if s.Released() {
		return errors.WithStack(channel.ErrClosed)
	}
	s.q.push(msg)
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
	q *queue
}

var _ channel.Receiver = (*receiver)(nil)

func (r *receiver) Recv() (channel.Message, error) {
	return r.q.pop()
}
