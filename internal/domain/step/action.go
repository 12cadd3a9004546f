package step

import (
	"context"
	"time"

	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// Action applies a step's change. Every external invocation goes through
// the supplied runner; actions hold no runner of their own, so the
// pipeline's mode choice governs them completely.
//
// Commands enumerates the invocations Execute performs, in declared
// order. Both methods are derived from the same specs, which is what
// makes a dry-run transcript exact: the commands reported are the
// commands live mode would run.
type Action interface {
	Execute(ctx context.Context, runner ports.CommandRunner) error
	Commands() []CommandSpec
}

// CommandAction runs a fixed sequence of commands in order, stopping at
// the first failure.
type CommandAction struct {
	specs []CommandSpec
}

// RunCommands creates a CommandAction from the given specs.
func RunCommands(specs ...CommandSpec) *CommandAction {
	return &CommandAction{specs: specs}
}

// Execute runs each command through the runner.
func (a *CommandAction) Execute(ctx context.Context, runner ports.CommandRunner) error {
	for _, spec := range a.specs {
		result, err := runner.Run(ctx, spec.Program, spec.Args...)
		if err != nil {
			return NewExecutionError(spec, err)
		}
		if !result.Success() && !spec.IgnoreExit {
			return NewActionFailedError(spec, result)
		}
	}
	return nil
}

// Commands returns the specs Execute runs.
func (a *CommandAction) Commands() []CommandSpec {
	specs := make([]CommandSpec, len(a.specs))
	copy(specs, a.specs)
	return specs
}

// RetryAction runs one command repeatedly until it succeeds, waiting
// between attempts. Used for readiness gates where a service needs time
// to come up after being started.
type RetryAction struct {
	spec     CommandSpec
	attempts int
	delay    time.Duration
}

// RetryCommand creates a RetryAction for spec with the given attempt
// budget and delay between attempts.
func RetryCommand(spec CommandSpec, attempts int, delay time.Duration) *RetryAction {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryAction{spec: spec, attempts: attempts, delay: delay}
}

// Execute retries the command until success or the attempt budget is
// spent. A process that cannot be started at all is not retried.
func (a *RetryAction) Execute(ctx context.Context, runner ports.CommandRunner) error {
	var last ports.CommandResult
	for attempt := 0; attempt < a.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.delay):
			}
		}

		result, err := runner.Run(ctx, a.spec.Program, a.spec.Args...)
		if err != nil {
			return NewExecutionError(a.spec, err)
		}
		if result.Success() {
			return nil
		}
		last = result
	}
	return NewActionFailedError(a.spec, last)
}

// Commands returns the single command the retry loop runs.
func (a *RetryAction) Commands() []CommandSpec {
	return []CommandSpec{a.spec}
}

// Ensure both actions implement Action.
var (
	_ Action = (*CommandAction)(nil)
	_ Action = (*RetryAction)(nil)
)
