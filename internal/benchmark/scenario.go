package benchmark

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kakao/chanbench/pkg/channel/mpmc"
	"github.com/kakao/chanbench/pkg/channel/unbounded"
	"github.com/kakao/chanbench/pkg/util/units"
)

// Scenario describes one benchmark run. It is a value type and is never
// modified by the benchmark.
type Scenario struct {
	Producers           int    `json:"producers"`
	MessagesPerProducer int    `json:"messagesPerProducer"`
	PayloadSize         int    `json:"payloadSize"`
	Kind                string `json:"kind"`
	// Capacity is passed to bounded backends. Zero selects the default of
	// the backend.
	Capacity int `json:"capacity,omitempty"`
}

func (sc Scenario) Validate() error {
	if sc.Producers < 1 {
		return fmt.Errorf("non-positive producers %d", sc.Producers)
	}
	if sc.MessagesPerProducer < 1 {
		return fmt.Errorf("non-positive messages per producer %d", sc.MessagesPerProducer)
	}
	if sc.PayloadSize < 0 {
		return fmt.Errorf("negative payload size %d", sc.PayloadSize)
	}
	if sc.Capacity < 0 {
		return fmt.Errorf("negative capacity %d", sc.Capacity)
	}
	if len(sc.Kind) == 0 {
		return errors.New("no channel kind")
	}
	return nil
}

// NumSamples returns the number of latency samples a successful run yields.
func (sc Scenario) NumSamples() int {
	return sc.Producers * sc.MessagesPerProducer
}

// Label names the scenario in logs, reports and exported series, for
// instance, unbounded-10-producers-10-msgs-100B-payload.
func (sc Scenario) Label() string {
	label := fmt.Sprintf("%s-%d-producers-%d-msgs-%dB-payload", sc.Kind, sc.Producers, sc.MessagesPerProducer, sc.PayloadSize)
	if sc.Capacity > 0 {
		label += "-cap-" + strconv.Itoa(sc.Capacity)
	}
	return label
}

func (sc Scenario) String() string {
	return sc.Label()
}

// ParseScenario parses a scenario formatted as
// producers:messages:payload:kind[:capacity]. The payload accepts human
// readable sizes such as 100, 1KiB or 4kB.
func ParseScenario(s string) (Scenario, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 4 && len(fields) != 5 {
		return Scenario{}, fmt.Errorf("scenario %q: want producers:messages:payload:kind[:capacity]", s)
	}

	var (
		sc  Scenario
		err error
	)
	sc.Producers, err = strconv.Atoi(fields[0])
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: producers: %w", s, err)
	}
	sc.MessagesPerProducer, err = strconv.Atoi(fields[1])
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: messages: %w", s, err)
	}
	payloadSize, err := units.FromByteSizeString(fields[2])
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: payload: %w", s, err)
	}
	sc.PayloadSize = int(payloadSize)
	sc.Kind = fields[3]
	if len(fields) == 5 {
		sc.Capacity, err = strconv.Atoi(fields[4])
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario %q: capacity: %w", s, err)
		}
	}

	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", s, err)
	}
	return sc, nil
}

// DefaultScenarios returns the scenarios run when none is given: ten
// producers sending ten messages each, and a single producer sending a
// hundred messages, against both the unbounded and the mpmc backends.
func DefaultScenarios() []Scenario {
	const payloadSize = 100

	shapes := []struct {
		producers int
		messages  int
	}{
		{producers: 10, messages: 10},
		{producers: 1, messages: 100},
	}
	kinds := []string{unbounded.Kind, mpmc.Kind}

	scenarios := make([]Scenario, 0, len(shapes)*len(kinds))
	for _, shape := range shapes {
		for _, kind := range kinds {
			scenarios = append(scenarios, Scenario{
				Producers:           shape.producers,
				MessagesPerProducer: shape.messages,
				PayloadSize:         payloadSize,
				Kind:                kind,
			})
		}
	}
	return scenarios
}
