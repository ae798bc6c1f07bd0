package channel

import (
	"sync"
	"sync/atomic"
)

// Handles counts the live sender handles of one channel. The close hook
// runs exactly once, when the last handle is released.
type Handles struct {
	mu      sync.Mutex
	live    int
	onClose func()
}

// NewHandles returns the first handle of a channel. onClose is called by the
// goroutine releasing the last handle, without any lock held.
func NewHandles(onClose func()) *Handle {
	hs := &Handles{live: 1, onClose: onClose}
	return &Handle{handles: hs}
}

func (hs *Handles) acquire() error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if hs.live == 0 {
		return ErrClosed
	}
	hs.live++
	return nil
}

func (hs *Handles) release() {
	hs.mu.Lock()
	hs.live--
	last := hs.live == 0
	hs.mu.Unlock()
	if last && hs.onClose != nil {
		hs.onClose()
	}
}

// Live returns the number of handles not yet released.
func (hs *Handles) Live() int {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.live
}

// Handle is one reference to a channel's Handles. Backends embed it in their
// Sender implementations. A handle must not be closed concurrently with its
// own Send.
type Handle struct {
	handles  *Handles
	released atomic.Bool
}

// Acquire returns a new handle sharing the same Handles.
func (h *Handle) Acquire() (*Handle, error) {
	if h.released.Load() {
		return nil, ErrClosed
	}
	if err := h.handles.acquire(); err != nil {
		return nil, err
	}
	return &Handle{handles: h.handles}, nil
}

// Released reports whether Close has been called on this handle.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Handles returns the counter shared by every clone of this handle.
func (h *Handle) Handles() *Handles {
	return h.handles
}

// Close releases the handle. Only the first call has an effect.
func (h *Handle) Close() error {
	if !h.released.CompareAndSwap(false, true) {
		return nil
	}
	h.handles.release()
	return nil
}
