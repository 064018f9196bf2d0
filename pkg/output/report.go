package output

import (
	"time"

	"github.com/vertti/deploycheck/pkg/check"
	"github.com/vertti/deploycheck/pkg/runner"
)

// Report is everything a renderer needs from one run.
type Report struct {
	Root        string       `json:"root"`
	GeneratedAt time.Time    `json:"generated_at"`
	Results     []ResultView `json:"results"`
	Summary     SummaryView  `json:"summary"`
}

// ResultView is the serialized form of a check.Result.
type ResultView struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Details []string `json:"details"`
}

// SummaryView adds the total to runner.Summary.
type SummaryView struct {
	runner.Summary
	Total int `json:"total"`
}

// NewReport builds a Report from run results.
func NewReport(root string, results []check.Result, now time.Time) Report {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		details := r.Details
		if details == nil {
			details = []string{}
		}
		views = append(views, ResultView{
			Name:    r.Name,
			Status:  string(r.Status),
			Message: r.Message,
			Kind:    string(r.Kind),
			Details: details,
		})
	}

	s := runner.Summarize(results)
	return Report{
		Root:        root,
		GeneratedAt: now,
		Results:     views,
		Summary:     SummaryView{Summary: s, Total: s.Total()},
	}
}
