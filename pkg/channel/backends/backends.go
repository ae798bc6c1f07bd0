// Package backends wires every channel backend shipped with chanbench into a
// registry.
package backends

import (
	"github.com/kakao/chanbench/pkg/channel"
	"github.com/kakao/chanbench/pkg/channel/gochan"
	"github.com/kakao/chanbench/pkg/channel/mpmc"
	"github.com/kakao/chanbench/pkg/channel/unbounded"
)

// Registry returns a new registry containing the unbounded, bounded,
// nonblocking and mpmc backends.
func Registry() *channel.Registry {
	reg := channel.NewRegistry()
	reg.MustRegister(unbounded.Kind, unbounded.New)
	reg.MustRegister(gochan.BoundedKind, gochan.NewBounded)
	reg.MustRegister(gochan.NonblockingKind, gochan.NewNonblocking)
	reg.MustRegister(mpmc.Kind, mpmc.New)
	return reg
}
