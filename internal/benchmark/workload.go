package benchmark

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/kakao/chanbench/pkg/channel"
)

// ProducerError is returned by a producer whose Send failed. The producer
// does not send its remaining messages.
type ProducerError struct {
	ProducerID int
	Seq        int
	Err        error
}

func (e *ProducerError) Error() string {
	return fmt.Sprintf("producer %d: message %d: %v", e.ProducerID, e.Seq, e.Err)
}

func (e *ProducerError) Unwrap() error {
	return e.Err
}

type workload struct {
	handles  []channel.Sender
	template PayloadTemplate
	messages int
}

// newWorkload clones a sender handle per producer and then releases the
// primary one, so the channel closes exactly when the last producer
// finishes. The primary handle is released even if cloning fails.
func newWorkload(primary channel.Sender, sc Scenario, template PayloadTemplate) (wl *workload, err error) {
	wl = &workload{
		handles:  make([]channel.Sender, 0, sc.Producers),
		template: template,
		messages: sc.MessagesPerProducer,
	}
	defer func() {
		err = multierr.Append(err, primary.Close())
		if err != nil {
			for _, h := range wl.handles {
				err = multierr.Append(err, h.Close())
			}
			wl = nil
		}
	}()

	for i := 0; i < sc.Producers; i++ {
		h, err := primary.Clone()
		if err != nil {
			return wl, fmt.Errorf("clone sender for producer %d: %w", i, err)
		}
		wl.handles = append(wl.handles, h)
	}
	return wl, nil
}

// run starts every producer and waits for all of them. Errors of all failed
// producers are combined.
func (wl *workload) run() error {
	var g errgroup.Group
	errs := make([]error, len(wl.handles))
	for id, h := range wl.handles {
		id, h := id, h
		g.Go(func() error {
			errs[id] = wl.produce(id, h)
			return errs[id]
		})
	}
	if err := g.Wait(); err == nil {
		return nil
	}
	return multierr.Combine(errs...)
}

func (wl *workload) produce(id int, h channel.Sender) (err error) {
	defer func() {
		err = multierr.Append(err, h.Close())
	}()

	for seq := 0; seq < wl.messages; seq++ {
		msg := channel.Message{
			SendTime:   time.Now(),
			ProducerID: id,
			Seq:        seq,
			Payload:    wl.template.Clone(),
		}
		if err := h.Send(msg); err != nil {
			return &ProducerError{ProducerID: id, Seq: seq, Err: err}
		}
	}
	return nil
}
