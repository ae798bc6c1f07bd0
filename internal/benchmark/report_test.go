package benchmark

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func samplesOf(durs ...time.Duration) []LatencySample {
	samples := make([]LatencySample, len(durs))
	for i, d := range durs {
		samples[i] = LatencySample{Seq: i, Duration: d}
	}
	return samples
}

func TestSummarize(t *testing.T) {
	require.Equal(t, Summary{}, Summarize(nil))

	var durs []time.Duration
	for i := 100; i >= 1; i-- {
		durs = append(durs, time.Duration(i)*time.Microsecond)
	}
	s := Summarize(samplesOf(durs...))
	require.Equal(t, Summary{
		Count: 100,
		Min:   1 * time.Microsecond,
		Mean:  50500 * time.Nanosecond,
		P50:   50 * time.Microsecond,
		P90:   90 * time.Microsecond,
		P99:   99 * time.Microsecond,
		Max:   100 * time.Microsecond,
	}, s)

	s = Summarize(samplesOf(7 * time.Millisecond))
	require.Equal(t, 7*time.Millisecond, s.Min)
	require.Equal(t, 7*time.Millisecond, s.P50)
	require.Equal(t, 7*time.Millisecond, s.P99)
	require.Equal(t, 7*time.Millisecond, s.Max)
}

func testResults() []ScenarioResult {
	completed := Scenario{Producers: 1, MessagesPerProducer: 2, PayloadSize: 100, Kind: "unbounded"}
	failed := Scenario{Producers: 1, MessagesPerProducer: 2, PayloadSize: 100, Kind: "mpmc"}
	return []ScenarioResult{
		{
			Scenario: completed,
			Label:    completed.Label(),
			State:    StateCompleted,
			Samples:  samplesOf(time.Millisecond, 3*time.Millisecond),
		},
		{
			Scenario: failed,
			Label:    failed.Label(),
			State:    StateFailed,
			Err:      errors.New("boom"),
		},
	}
}

func TestReportEncoders(t *testing.T) {
	rpts := NewReports(testResults())
	require.Len(t, rpts.Reports, 2)
	require.Equal(t, 2, rpts.Reports[0].Summary.Count)
	require.Empty(t, rpts.Reports[0].Error)
	require.Zero(t, rpts.Reports[1].Summary.Count)
	require.Equal(t, "boom", rpts.Reports[1].Error)

	t.Run("JSON", func(t *testing.T) {
		var decoded struct {
			Reports []struct {
				Label   string `json:"label"`
				State   string `json:"state"`
				Error   string `json:"error"`
				Summary struct {
					Count int   `json:"count"`
					Max   int64 `json:"max"`
				} `json:"summary"`
			} `json:"reports"`
		}
		require.NoError(t, json.Unmarshal([]byte(MustEncode(JSONEncoder{}, rpts)), &decoded))
		require.Len(t, decoded.Reports, 2)
		require.Equal(t, "unbounded-1-producers-2-msgs-100B-payload", decoded.Reports[0].Label)
		require.Equal(t, "completed", decoded.Reports[0].State)
		require.Equal(t, 2, decoded.Reports[0].Summary.Count)
		require.Equal(t, (3 * time.Millisecond).Nanoseconds(), decoded.Reports[0].Summary.Max)
		require.Equal(t, "failed", decoded.Reports[1].State)
		require.Equal(t, "boom", decoded.Reports[1].Error)
	})

	t.Run("String", func(t *testing.T) {
		out := MustEncode(StringEncoder{}, rpts)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		require.True(t, strings.HasPrefix(lines[0], "scenario"))
		require.Contains(t, lines[1], "unbounded-1-producers-2-msgs-100B-payload")
		require.Contains(t, lines[1], "completed")
		require.Contains(t, lines[1], "3ms")
		require.Contains(t, lines[2], "failed")
		require.Contains(t, lines[2], "boom")
	})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "pending", StatePending.String())
	require.Equal(t, "running", StateRunning.String())
	require.Equal(t, "completed", StateCompleted.String())
	require.Equal(t, "failed", StateFailed.String())
	require.Equal(t, "skipped", StateSkipped.String())
	require.Equal(t, "State(42)", State(42).String())
}
