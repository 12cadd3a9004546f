package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// Summary counts step outcomes within a run.
type Summary struct {
	AlreadySatisfied int
	Applied          int
	Simulated        int
	Failed           int
}

// Total returns the number of steps the summary covers.
func (s Summary) Total() int {
	return s.AlreadySatisfied + s.Applied + s.Simulated + s.Failed
}

// RunReport is the ordered record of one pipeline run: every step that
// was reached, in declared order, plus the run's mode and timing. A run
// produces exactly one report; an aborted run still reports everything
// up to and including the failing step.
type RunReport struct {
	id          string
	mode        ports.Mode
	startedAt   time.Time
	duration    time.Duration
	results     []StepResult
	interrupted bool
}

// NewRunReport creates a report for the given mode and results.
func NewRunReport(mode ports.Mode, results []StepResult) RunReport {
	copied := make([]StepResult, len(results))
	copy(copied, results)

	return RunReport{
		id:        uuid.NewString(),
		mode:      mode,
		startedAt: time.Now(),
		results:   copied,
	}
}

// ID returns the report's unique identifier.
func (r RunReport) ID() string {
	return r.id
}

// Mode returns the mode the run executed under.
func (r RunReport) Mode() ports.Mode {
	return r.mode
}

// StartedAt returns when the run began.
func (r RunReport) StartedAt() time.Time {
	return r.startedAt
}

// Duration returns how long the run took.
func (r RunReport) Duration() time.Duration {
	return r.duration
}

// Results returns the step results in execution order.
func (r RunReport) Results() []StepResult {
	results := make([]StepResult, len(r.results))
	copy(results, r.results)
	return results
}

// Len returns the number of steps the run reached.
func (r RunReport) Len() int {
	return len(r.results)
}

// Interrupted returns true when the run stopped because of external
// cancellation rather than a step decision.
func (r RunReport) Interrupted() bool {
	return r.interrupted
}

// FatalFailure returns the result that aborted the run, if any.
func (r RunReport) FatalFailure() (StepResult, bool) {
	for _, res := range r.results {
		if res.FatalFailure() {
			return res, true
		}
	}
	return StepResult{}, false
}

// Summary tallies the outcomes.
func (r RunReport) Summary() Summary {
	var s Summary
	for _, res := range r.results {
		switch res.Outcome() {
		case step.OutcomeAlreadySatisfied:
			s.AlreadySatisfied++
		case step.OutcomeApplied:
			s.Applied++
		case step.OutcomeSimulated:
			s.Simulated++
		case step.OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// ExitCode maps the run to a process exit code: non-zero only when a
// fatal step failed. Recoverable failures keep the best-effort posture
// of exiting zero.
func (r RunReport) ExitCode() int {
	if _, fatal := r.FatalFailure(); fatal {
		return 1
	}
	return 0
}

// WithStartedAt returns a copy with the start time set.
func (r RunReport) WithStartedAt(t time.Time) RunReport {
	r.startedAt = t
	return r
}

// WithDuration returns a copy with the duration set.
func (r RunReport) WithDuration(d time.Duration) RunReport {
	r.duration = d
	return r
}

// WithInterrupted returns a copy flagged as interrupted.
func (r RunReport) WithInterrupted(interrupted bool) RunReport {
	r.interrupted = interrupted
	return r
}
