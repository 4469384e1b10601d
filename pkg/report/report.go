// Package report builds the machine-readable form of a checker run.
package report

import (
	"encoding/json"
	"io"

	"github.com/vertti/shipcheck/pkg/check"
)

// Entry is one check result with its stable identifier.
type Entry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Report is the structured outcome of a checker run.
type Report struct {
	Ready  bool    `json:"ready"`
	Passed int     `json:"passed"`
	Failed int     `json:"failed"`
	Warned int     `json:"warned"`
	Checks []Entry `json:"checks"`
}

// New folds results into a report.
func New(results []check.Result) Report {
	var tally check.Tally
	tally.AddAll(results)

	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = Entry{
			ID:      r.ID,
			Name:    r.Name,
			Status:  string(r.Status),
			Message: r.Message,
			Details: r.Details,
		}
	}
	return Report{
		Ready:  tally.Ready(),
		Passed: tally.Passed,
		Failed: tally.Failed,
		Warned: tally.Warned,
		Checks: entries,
	}
}

// Write encodes the report as indented JSON.
func (r Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
