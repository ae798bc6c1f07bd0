package channel

import "errors"

var (
	// ErrClosed is returned by Send on a released handle and by Recv once the
	// channel is drained and every sender handle has been released.
	ErrClosed = errors.New("channel: closed")
	// ErrFull is returned by Send of bounded backends that reject messages
	// instead of blocking when the buffer is full.
	ErrFull = errors.New("channel: full")
	// ErrEmpty is returned by Recv of backends that poll. It is transient.
	ErrEmpty = errors.New("channel: empty")

	ErrUnknownKind   = errors.New("channel: unknown kind")
	ErrInvalidConfig = errors.New("channel: invalid config")
)
