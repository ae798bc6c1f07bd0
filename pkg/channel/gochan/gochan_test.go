package gochan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kakao/chanbench/pkg/channel"
	"github.com/kakao/chanbench/pkg/channel/channeltest"
)

func TestBounded(t *testing.T) {
	t.Run("DefaultCapacity", func(t *testing.T) {
		channeltest.Run(t, NewBounded, channeltest.Options{})
	})
	t.Run("SmallCapacity", func(t *testing.T) {
		channeltest.Run(t, NewBounded, channeltest.Options{
			Config: channel.Config{Capacity: 8},
		})
	})
}

func TestNonblocking(t *testing.T) {
	channeltest.Run(t, NewNonblocking, channeltest.Options{
		Config:          channel.Config{Capacity: 8},
		RejectsWhenFull: true,
	})
}

func TestBoundedBlocksWhenFull(t *testing.T) {
	s, r, err := NewBounded(channel.Config{Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, s.Send(channel.Message{Seq: 0}))

	sent := make(chan error, 1)
	go func() {
		sent <- s.Send(channel.Message{Seq: 1})
	}()

	select {
	case err := <-sent:
		t.Fatalf("send on a full bounded channel returned: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	msg, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, 0, msg.Seq)
	require.NoError(t, <-sent)

	require.NoError(t, s.Close())
	msg, err = r.Recv()
	require.NoError(t, err)
	require.Equal(t, 1, msg.Seq)
	_, err = r.Recv()
	require.ErrorIs(t, err, channel.ErrClosed)
}

func TestNonblockingRejectsWhenFull(t *testing.T) {
	s, r, err := NewNonblocking(channel.Config{Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, s.Send(channel.Message{Seq: 0}))
	require.ErrorIs(t, s.Send(channel.Message{Seq: 1}), channel.ErrFull)

	_, err = r.Recv()
	require.NoError(t, err)
	require.NoError(t, s.Send(channel.Message{Seq: 2}))
	require.NoError(t, s.Close())

	msg, err := r.Recv()
	require.NoError(t, err)
	require.Equal(t, 2, msg.Seq)
	_, err = r.Recv()
	require.ErrorIs(t, err, channel.ErrClosed)
}

func TestInvalidCapacity(t *testing.T) {
	_, _, err := NewBounded(channel.Config{Capacity: -1})
	require.ErrorIs(t, err, channel.ErrInvalidConfig)
	_, _, err = NewNonblocking(channel.Config{Capacity: -1})
	require.ErrorIs(t, err, channel.ErrInvalidConfig)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
