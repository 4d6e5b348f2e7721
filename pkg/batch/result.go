// pkg/batch/result.go
package batch

import "time"

// Status is the outcome of one candidate
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusPlanned   Status = "planned"
)

// ItemResult records what happened to one archive
type ItemResult struct {
	Source      string        `json:"source"`
	RelPath     string        `json:"rel_path"`
	Destination string        `json:"destination"`
	Status      Status        `json:"status"`
	Format      string        `json:"format,omitempty"`
	Stages      int           `json:"stages,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
	Error       string        `json:"error,omitempty"`

	// Err is the failure cause, nil unless Status is StatusFailed
	Err error `json:"-"`
}

// Result contains the outcome of a batch extraction
type Result struct {
	SourceRoot      string
	DestinationRoot string

	// Number of archive candidates discovered
	CandidatesTotal int

	Succeeded int
	Failed    int
	Skipped   int

	// One entry per candidate, in processing order
	Items []ItemResult

	// List of errors encountered (non-fatal)
	Errors []error

	Started  time.Time
	Finished time.Time
}

// Success returns true if no candidate failed and nothing else went wrong
func (r *Result) Success() bool {
	return r.Failed == 0 && len(r.Errors) == 0
}

// Elapsed returns the wall time of the batch
func (r *Result) Elapsed() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// FailedItems returns the candidates that could not be extracted
func (r *Result) FailedItems() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Status == StatusFailed {
			failed = append(failed, item)
		}
	}
	return failed
}

func (r *Result) record(item ItemResult) {
	switch item.Status {
	case StatusSucceeded:
		r.Succeeded++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
	r.Items = append(r.Items, item)
}
