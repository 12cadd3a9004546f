package doctor

import "github.com/felixgeelhaar/airstrip/internal/stack"

// Status classifies a single health check result.
type Status string

const (
	// StatusOK means the check passed.
	StatusOK Status = "ok"
	// StatusWarn means the stack works but something is off, e.g. a tool
	// below its minimum version.
	StatusWarn Status = "warn"
	// StatusFail means a component is broken or missing.
	StatusFail Status = "fail"
)

// Check is one health check result.
type Check struct {
	Name       string
	Status     Status
	Detail     string
	Suggestion string
}

// Report is the outcome of a doctor run.
type Report struct {
	Checks    []Check
	Endpoints stack.Endpoints
}

// Healthy reports whether no check failed. Warnings do not count:
// the stack still works.
func (r Report) Healthy() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return false
		}
	}
	return true
}

// Issues counts the checks that did not pass.
func (r Report) Issues() int {
	issues := 0
	for _, check := range r.Checks {
		if check.Status != StatusOK {
			issues++
		}
	}
	return issues
}
