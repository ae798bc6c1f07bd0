// Package channeltest provides the conformance tests shared by every channel
// backend.
package channeltest

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kakao/chanbench/pkg/channel"
)

// Options tunes the conformance tests for a backend.
type Options struct {
	// Config is passed to the factory. Its capacity must be zero or at
	// least 8.
	Config channel.Config
	// RejectsWhenFull must be set for backends that fail Send with
	// channel.ErrFull instead of blocking. Senders then retry rejected
	// messages.
	RejectsWhenFull bool
}

// Run runs the conformance tests against factory.
func Run(t *testing.T, factory channel.Factory, opts Options) {
	t.Run("DrainThenClosed", func(t *testing.T) {
		testDrainThenClosed(t, factory, opts)
	})
	t.Run("ReleasedHandle", func(t *testing.T) {
		testReleasedHandle(t, factory, opts)
	})
	t.Run("StaysOpenWhileCloneAlive", func(t *testing.T) {
		testStaysOpenWhileCloneAlive(t, factory, opts)
	})
	t.Run("ConcurrentSenders", func(t *testing.T) {
		testConcurrentSenders(t, factory, opts)
	})
}

func newMessage(producerID, seq int) channel.Message {
	return channel.Message{
		SendTime:   time.Now(),
		ProducerID: producerID,
		Seq:        seq,
		Payload:    []byte{byte(seq)},
	}
}

func send(s channel.Sender, msg channel.Message, opts Options) error {
	for {
		err := s.Send(msg)
		if opts.RejectsWhenFull && errors.Is(err, channel.ErrFull) {
			runtime.Gosched()
			continue
		}
		return err
	}
}

func testDrainThenClosed(t *testing.T, factory channel.Factory, opts Options) {
	const n = 4

	s, r, err := factory(opts.Config)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.NoError(t, send(s, newMessage(0, i), opts))
	}
	require.NoError(t, s.Close())

	for i := 0; i < n; i++ {
		msg, err := r.Recv()
		require.NoError(t, err)
		require.Equal(t, i, msg.Seq)
		require.Equal(t, []byte{byte(i)}, msg.Payload)
	}

	// The end-of-stream signal is sticky.
	for i := 0; i < 2; i++ {
		_, err = r.Recv()
		require.ErrorIs(t, err, channel.ErrClosed)
	}
}

func testReleasedHandle(t *testing.T, factory channel.Factory, opts Options) {
	s, r, err := factory(opts.Config)
	require.NoError(t, err)

	clone, err := s.Clone()
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Send(newMessage(0, 0)), channel.ErrClosed)
	_, err = s.Clone()
	require.ErrorIs(t, err, channel.ErrClosed)

	require.NoError(t, clone.Close())
	_, err = r.Recv()
	require.ErrorIs(t, err, channel.ErrClosed)
}

func testStaysOpenWhileCloneAlive(t *testing.T, factory channel.Factory, opts Options) {
	s, r, err := factory(opts.Config)
	require.NoError(t, err)

	clone, err := s.Clone()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	recvC := make(chan error, 1)
	go func() {
		_, err := r.Recv()
		recvC <- err
	}()

	select {
	case err := <-recvC:
		t.Fatalf("unexpected receive while a handle is alive: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, send(clone, newMessage(1, 0), opts))
	require.NoError(t, <-recvC)

	require.NoError(t, clone.Close())
	_, err = r.Recv()
	require.ErrorIs(t, err, channel.ErrClosed)
}

func testConcurrentSenders(t *testing.T, factory channel.Factory, opts Options) {
	const (
		producers = 8
		messages  = 500
	)

	s, r, err := factory(opts.Config)
	require.NoError(t, err)

	handles := make([]channel.Sender, producers)
	for i := range handles {
		handles[i], err = s.Clone()
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	var wg sync.WaitGroup
	errC := make(chan error, producers)
	wg.Add(producers)
	for id, h := range handles {
		id, h := id, h
		go func() {
			defer wg.Done()
			defer func() {
				_ = h.Close()
			}()
			for seq := 0; seq < messages; seq++ {
				if err := send(h, newMessage(id, seq), opts); err != nil {
					errC <- err
					return
				}
			}
		}()
	}

	next := make([]int, producers)
	total := 0
	for {
		msg, err := r.Recv()
		if errors.Is(err, channel.ErrClosed) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, next[msg.ProducerID], msg.Seq, "producer %d out of order", msg.ProducerID)
		next[msg.ProducerID]++
		total++
	}
	wg.Wait()
	close(errC)
	for err := range errC {
		require.NoError(t, err)
	}

	require.Equal(t, producers*messages, total)
	for id := range next {
		require.Equal(t, messages, next[id])
	}
}
