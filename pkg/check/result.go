package check

// Status represents the outcome of a check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Kind classifies why a check did not pass.
type Kind string

const (
	KindMissingResource  Kind = "MissingResource"
	KindInvalidValue     Kind = "InvalidValue"
	KindPermissionDenied Kind = "PermissionDenied"
	KindInternal         Kind = "Internal"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "file: .env", "env: APP_KEY"
	Status  Status   // PASS, WARN or FAIL
	Message string   // one-line summary
	Details []string // human-readable details
	Kind    Kind     // empty when the check passed
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusPass
}

// Failed returns true if the check failed. Warnings are not failures.
func (r Result) Failed() bool {
	return r.Status != StatusPass && r.Status != StatusWarn
}
