package benchmark

import "time"

// Report summarizes one scenario result.
type Report struct {
	Label   string        `json:"label"`
	Kind    string        `json:"kind"`
	State   State         `json:"state"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
	Summary Summary       `json:"summary"`
}

type Reports struct {
	Reports []Report `json:"reports"`
}

func NewReports(results []ScenarioResult) Reports {
	rpts := Reports{
		Reports: make([]Report, 0, len(results)),
	}
	for _, res := range results {
		rpt := Report{
			Label:   res.Label,
			Kind:    res.Scenario.Kind,
			State:   res.State,
			Elapsed: res.Elapsed,
		}
		if res.Err != nil {
			rpt.Error = res.Err.Error()
		}
		if res.Completed() {
			rpt.Summary = Summarize(res.Samples)
		}
		rpts.Reports = append(rpts.Reports, rpt)
	}
	return rpts
}
