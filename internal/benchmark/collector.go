package benchmark

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/kakao/chanbench/pkg/channel"
)

// collector is the single consumer of a scenario. It computes the latency of
// every message it receives.
type collector struct {
	receiver channel.Receiver
	samples  []LatencySample
}

func newCollector(receiver channel.Receiver, expected int) *collector {
	return &collector{
		receiver: receiver,
		samples:  make([]LatencySample, 0, expected),
	}
}

// run drains the receiver until the channel is closed. No I/O happens in
// this loop.
func (c *collector) run() error {
	for {
		msg, err := c.receiver.Recv()
		if err == nil {
			c.samples = append(c.samples, LatencySample{
				ProducerID: msg.ProducerID,
				Seq:        msg.Seq,
				Duration:   time.Since(msg.SendTime),
			})
			continue
		}
		if errors.Is(err, channel.ErrClosed) {
			return nil
		}
		if errors.Is(err, channel.ErrEmpty) {
			runtime.Gosched()
			continue
		}
		return fmt.Errorf("collector: %w", err)
	}
}
