// Package pipeline executes an ordered list of steps against the host
// and aggregates the outcome of each into a run report.
package pipeline

import (
	"time"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
)

// StepResult captures the outcome of one step within one run. Results
// are immutable after creation; the With* methods return copies.
type StepResult struct {
	stepID      step.StepID
	title       string
	outcome     step.Outcome
	criticality step.Criticality
	detail      string
	commands    []step.CommandSpec
	remedy      string
	err         error
	duration    time.Duration
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.StepID, title string, outcome step.Outcome) StepResult {
	return StepResult{
		stepID:      stepID,
		title:       title,
		outcome:     outcome,
		criticality: step.Recoverable,
	}
}

// StepID returns the ID of the step.
func (r StepResult) StepID() step.StepID {
	return r.stepID
}

// Title returns the step's human-readable title.
func (r StepResult) Title() string {
	return r.title
}

// Outcome returns how the step concluded.
func (r StepResult) Outcome() step.Outcome {
	return r.outcome
}

// Criticality returns the criticality the step carried.
func (r StepResult) Criticality() step.Criticality {
	return r.criticality
}

// Detail returns the human-readable detail line.
func (r StepResult) Detail() string {
	return r.detail
}

// Commands returns the commands the step ran (applied) or would run
// (simulated).
func (r StepResult) Commands() []step.CommandSpec {
	commands := make([]step.CommandSpec, len(r.commands))
	copy(commands, r.commands)
	return commands
}

// Remedy returns the step's manual remediation hint, set on failures.
func (r StepResult) Remedy() string {
	return r.remedy
}

// Error returns the failure, if any.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// FatalFailure returns true when this result is a failure that aborts
// the run.
func (r StepResult) FatalFailure() bool {
	return r.outcome == step.OutcomeFailed && r.criticality == step.Fatal
}

// WithCriticality returns a copy with the criticality set.
func (r StepResult) WithCriticality(c step.Criticality) StepResult {
	r.criticality = c
	return r
}

// WithDetail returns a copy with the detail line set.
func (r StepResult) WithDetail(detail string) StepResult {
	r.detail = detail
	return r
}

// WithCommands returns a copy with the command list set.
func (r StepResult) WithCommands(commands []step.CommandSpec) StepResult {
	copied := make([]step.CommandSpec, len(commands))
	copy(copied, commands)
	r.commands = copied
	return r
}

// WithRemedy returns a copy with the remediation hint set.
func (r StepResult) WithRemedy(remedy string) StepResult {
	r.remedy = remedy
	return r
}

// WithError returns a copy with the failure set.
func (r StepResult) WithError(err error) StepResult {
	r.err = err
	return r
}

// WithDuration returns a copy with the duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}
