// Package doctor provides diagnostic checks for a holster installation.
package doctor

// Severity classifies a check outcome.
type Severity int

const (
	SeverityPass    Severity = iota // check passed
	SeverityInfo                    // informational, not a problem
	SeverityWarning                 // potential issue, operation continues
	SeverityError                   // prevents proper operation
)

func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// CheckResult is the outcome of a single diagnostic check. Details carries
// structured context for JSON output; FixHint tells the user what to do
// about a warning or error.
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	FixHint  string         `json:"fix_hint,omitempty"`
}

// Summary counts check results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) record(r *CheckResult) {
	switch r.Status {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
