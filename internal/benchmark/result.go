package benchmark

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"
)

// LatencySample is the delivery latency of one message.
type LatencySample struct {
	ProducerID int           `json:"producerId"`
	Seq        int           `json:"seq"`
	Duration   time.Duration `json:"duration"`
}

// State is the lifecycle state of a scenario. A scenario moves from
// StatePending to StateRunning and then to either StateCompleted or
// StateFailed. Scenarios never started because the run was cancelled end in
// StateSkipped.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateSkipped
)

var stateNames = [...]string{
	StatePending:   "pending",
	StateRunning:   "running",
	StateCompleted: "completed",
	StateFailed:    "failed",
	StateSkipped:   "skipped",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Scenario Scenario
	Label    string
	State    State
	// Samples are ordered by arrival at the collector.
	Samples []LatencySample
	// Err is the cause of a failed or skipped scenario.
	Err     error
	Elapsed time.Duration
}

func (sr ScenarioResult) Completed() bool {
	return sr.State == StateCompleted
}

// Summary is a descriptive summary of latency samples. Percentiles use the
// nearest-rank method.
type Summary struct {
	Count int           `json:"count"`
	Min   time.Duration `json:"min"`
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"p50"`
	P90   time.Duration `json:"p90"`
	P99   time.Duration `json:"p99"`
	Max   time.Duration `json:"max"`
}

func Summarize(samples []LatencySample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	durs := make([]time.Duration, len(samples))
	var sum time.Duration
	for i, sample := range samples {
		durs[i] = sample.Duration
		sum += sample.Duration
	}
	slices.Sort(durs)

	rank := func(p float64) time.Duration {
		idx := int(math.Ceil(p/100*float64(len(durs)))) - 1
		if idx < 0 {
			idx = 0
		}
		return durs[idx]
	}

	return Summary{
		Count: len(durs),
		Min:   durs[0],
		Mean:  sum / time.Duration(len(durs)),
		P50:   rank(50),
		P90:   rank(90),
		P99:   rank(99),
		Max:   durs[len(durs)-1],
	}
}
