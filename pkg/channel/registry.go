package channel

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps backend kinds to their factories. It is safe for concurrent
// use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a backend. Registering an empty or already registered kind
// fails.
func (r *Registry) Register(kind string, f Factory) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind", ErrInvalidConfig)
	}
	if f == nil {
		return fmt.Errorf("%w: nil factory for kind %s", ErrInvalidConfig, kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: kind %s already registered", ErrInvalidConfig, kind)
	}
	r.factories[kind] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind string, f Factory) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// New constructs a fresh channel of the given kind.
func (r *Registry) New(kind string, cfg Config) (Sender, Receiver, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if cfg.Capacity < 0 {
		return nil, nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidConfig, cfg.Capacity)
	}
	return f(cfg)
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	r.mu.RUnlock()
	slices.Sort(kinds)
	return kinds
}
