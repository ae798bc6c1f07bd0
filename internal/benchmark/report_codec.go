package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/kakao/chanbench/pkg/util/units"
)

type ReportEncoder interface {
	Encode(rpts Reports) ([]byte, error)
}

type JSONEncoder struct{}

func (je JSONEncoder) Encode(rpts Reports) ([]byte, error) {
	return json.Marshal(rpts)
}

// StringEncoder encodes reports as a table. Durations are printed with four
// significant digits.
type StringEncoder struct{}

func (se StringEncoder) Encode(rpts Reports) ([]byte, error) {
	const precision = 4

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "scenario\tstate\tsamples\tmin\tmean\tp50\tp90\tp99\tmax\terror")
	for _, rpt := range rpts.Reports {
		s := rpt.Summary
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rpt.Label,
			rpt.State,
			s.Count,
			units.ToHumanDurationString(s.Min, precision),
			units.ToHumanDurationString(s.Mean, precision),
			units.ToHumanDurationString(s.P50, precision),
			units.ToHumanDurationString(s.P90, precision),
			units.ToHumanDurationString(s.P99, precision),
			units.ToHumanDurationString(s.Max, precision),
			rpt.Error,
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func MustEncode(enc ReportEncoder, rpts Reports) string {
	buf, err := enc.Encode(rpts)
	if err != nil {
		panic(err)
	}
	return string(buf)
}
