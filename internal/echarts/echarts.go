// Package echarts exports latency series as an ECharts option document.
//
// The document is a JavaScript assignment to the variable option. Every
// completed scenario becomes one line series whose data are the latencies
// in nanoseconds, in arrival order.
package echarts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kakao/chanbench/internal/benchmark"
)

// Exporter persists the results of a benchmark run.
type Exporter interface {
	Export(results []benchmark.ScenarioResult) error
}

// ExportError is returned when the document cannot be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("echarts: export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

type SeriesLabel struct {
	Show bool `json:"show"`
}

// SeriesData is a line series of the option document.
type SeriesData struct {
	Name  string      `json:"name"`
	Data  []int64     `json:"data"`
	Type  string      `json:"type"`
	Label SeriesLabel `json:"label"`
}

// Series converts the completed results into line series. Other results are
// left out.
func Series(results []benchmark.ScenarioResult) []SeriesData {
	series := make([]SeriesData, 0, len(results))
	for _, res := range results {
		if !res.Completed() {
			continue
		}
		data := make([]int64, len(res.Samples))
		for i, sample := range res.Samples {
			data[i] = sample.Duration.Nanoseconds()
		}
		series = append(series, SeriesData{
			Name:  res.Label,
			Data:  data,
			Type:  "line",
			Label: SeriesLabel{Show: true},
		})
	}
	return series
}

// The y-axis formatter prints a nanosecond value with the first unit among
// s, ms, us and ns whose converted value is greater than one.
const documentFormat = `option = {
  "xAxis": {
    "type": "category",
    "data": []
  },
  "legend": {},
  "yAxis": {
    "type": "value",
    "axisLabel": {
      "formatter": function (s) {
        function convert(s, n) {
          return s * 1.0 / Math.pow(10, n);
        }
        const units = [
          ["s", (s) => convert(s, 9)],
          ["ms", (s) => convert(s, 6)],
          ["us", (s) => convert(s, 3)],
          ["ns", (s) => convert(s, 0)],
        ];
        const res = units
          .map(([unit, f]) => [unit, f(s)])
          .filter(([unit, value]) => value > 1)[0];
        return !res ? '0s' : ` + "`${res[1]}${res[0]}`" + `;
      }
    }
  },
  "series": %s
}
`

// Render returns the option document of the results.
func Render(results []benchmark.ScenarioResult) ([]byte, error) {
	return render(Series(results))
}

func render(series []SeriesData) ([]byte, error) {
	data, err := json.Marshal(series)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, documentFormat, data)
	return buf.Bytes(), nil
}

// FileExporter writes the option document to a file.
type FileExporter struct {
	config
}

var _ Exporter = (*FileExporter)(nil)

func New(path string, opts ...Option) (*FileExporter, error) {
	cfg, err := newConfig(path, opts)
	if err != nil {
		return nil, err
	}
	return &FileExporter{config: cfg}, nil
}

// Export renders the document and replaces the file atomically: the
// document is written to a temporary file in the same directory and then
// renamed, so a failed export leaves no partial document.
func (fe *FileExporter) Export(results []benchmark.ScenarioResult) error {
	series := Series(results)
	doc, err := render(series)
	if err != nil {
		return &ExportError{Path: fe.path, Err: err}
	}
	if err := fe.write(doc); err != nil {
		return &ExportError{Path: fe.path, Err: err}
	}
	fe.logger.Info("exported",
		zap.String("path", fe.path),
		zap.Int("series", len(series)),
		zap.Int("bytes", len(doc)),
	)
	return nil
}

func (fe *FileExporter) write(doc []byte) (err error) {
	dir, base := filepath.Split(fe.path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(doc); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Chmod(fe.fileMode); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, fe.path)
}
