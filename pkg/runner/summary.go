package runner

import "github.com/vertti/deploycheck/pkg/check"

// Summary counts results by status.
type Summary struct {
	Pass int `json:"pass"`
	Fail int `json:"fail"`
	Warn int `json:"warn"`
}

// Total returns the number of results summarized.
func (s Summary) Total() int {
	return s.Pass + s.Fail + s.Warn
}

// Healthy reports whether no check failed.
func (s Summary) Healthy() bool {
	return s.Fail == 0
}

// Summarize counts results by status. Unknown statuses count as failures.
func Summarize(results []check.Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case check.StatusPass:
			s.Pass++
		case check.StatusWarn:
			s.Warn++
		default:
			s.Fail++
		}
	}
	return s
}
