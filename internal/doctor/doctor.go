package doctor

import "time"

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check.
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Report aggregates the results of one doctor run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// Healthy reports whether the run produced no errors.
func (r *Report) Healthy() bool {
	return r.Summary.Errors == 0
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
}

// NewRunner creates a runner with the standard holster checks for the
// given store path and config load error.
func NewRunner(storePath string, configErr error) *Runner {
	r := &Runner{}
	r.AddCheck(NewConfigCheck(configErr))
	r.AddCheck(NewStoreCheck(storePath))
	r.AddCheck(NewStorePermissionCheck(storePath))
	r.AddCheck(NewScanLocationsCheck())
	r.AddCheck(NewSnapshotCheck(storePath))
	return r
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run()
		report.Results = append(report.Results, result)
		report.Summary.record(result)
	}

	return report
}
