package echarts

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/kakao/chanbench/internal/benchmark"
)

func newResult(kind string, state benchmark.State, n int) benchmark.ScenarioResult {
	sc := benchmark.Scenario{Producers: 1, MessagesPerProducer: n, PayloadSize: 100, Kind: kind}
	res := benchmark.ScenarioResult{
		Scenario: sc,
		Label:    sc.Label(),
		State:    state,
	}
	for i := 0; i < n; i++ {
		res.Samples = append(res.Samples, benchmark.LatencySample{Seq: i, Duration: time.Duration(i+1) * time.Microsecond})
	}
	if state == benchmark.StateFailed {
		res.Err = errors.New("failed")
	}
	return res
}

// decodeSeries extracts the series array from an option document.
func decodeSeries(t *testing.T, doc []byte) []SeriesData {
	t.Helper()
	const key = `"series": `
	require.True(t, bytes.HasPrefix(doc, []byte("option = {")))
	idx := bytes.Index(doc, []byte(key))
	require.Positive(t, idx)
	body := bytes.TrimSpace(doc[idx+len(key):])
	body = bytes.TrimSuffix(body, []byte("}"))

	var series []SeriesData
	require.NoError(t, json.Unmarshal(body, &series))
	return series
}

func TestExportTwoSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutputPath)
	exp, err := New(path, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	results := []benchmark.ScenarioResult{
		newResult("unbounded", benchmark.StateCompleted, 10),
		newResult("mpmc", benchmark.StateCompleted, 100),
	}
	require.NoError(t, exp.Export(results))

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(doc), `"formatter": function (s)`)
	require.Contains(t, string(doc), `'0s'`)

	series := decodeSeries(t, doc)
	require.Len(t, series, 2)
	for i, s := range series {
		require.Equal(t, results[i].Label, s.Name)
		require.Len(t, s.Data, len(results[i].Samples))
		require.Equal(t, "line", s.Type)
		require.True(t, s.Label.Show)
	}
	require.EqualValues(t, 1000, series[0].Data[0])

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFileMode, info.Mode().Perm())

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExportCompletedOnly(t *testing.T) {
	results := []benchmark.ScenarioResult{
		newResult("unbounded", benchmark.StateCompleted, 3),
		newResult("failing", benchmark.StateFailed, 2),
		newResult("mpmc", benchmark.StateSkipped, 0),
	}
	series := Series(results)
	require.Len(t, series, 1)
	require.Equal(t, results[0].Label, series[0].Name)

	doc, err := Render(results)
	require.NoError(t, err)
	require.Len(t, decodeSeries(t, doc), 1)

	doc, err = Render(nil)
	require.NoError(t, err)
	require.Empty(t, decodeSeries(t, doc))
}

func TestExportOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.js")
	exp, err := New(path)
	require.NoError(t, err)

	require.NoError(t, exp.Export([]benchmark.ScenarioResult{newResult("unbounded", benchmark.StateCompleted, 1)}))
	require.NoError(t, exp.Export([]benchmark.ScenarioResult{
		newResult("unbounded", benchmark.StateCompleted, 1),
		newResult("mpmc", benchmark.StateCompleted, 1),
	}))

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, decodeSeries(t, doc), 2)
}

func TestExportWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosuchdir", "out.js")
	exp, err := New(path)
	require.NoError(t, err)

	err = exp.Export([]benchmark.ScenarioResult{newResult("unbounded", benchmark.StateCompleted, 1)})
	require.Error(t, err)

	var eerr *ExportError
	require.ErrorAs(t, err, &eerr)
	require.Equal(t, path, eerr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewInvalidPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)

	_, err = New(t.TempDir() + string(os.PathSeparator))
	require.Error(t, err)

	_, err = New("out.js", WithLogger(nil))
	require.Error(t, err)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
