package pipeline

import (
	"context"
	"time"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// Listener observes step execution as it happens, for live transcripts
// and progress UIs. Implementations must not block for long; the runner
// calls them synchronously.
type Listener interface {
	StepStarted(s step.Step)
	StepCompleted(result StepResult)
}

// Runner executes steps strictly in declared order against a single
// command runner. The runner never branches on an ambient mode flag:
// everything it needs to know about live-versus-dry-run it learns from
// the executor it was given.
type Runner struct {
	exec     ports.CommandRunner
	logger   ports.Logger
	listener Listener
}

// NewRunner creates a Runner that invokes actions through exec.
func NewRunner(exec ports.CommandRunner, logger ports.Logger) *Runner {
	return &Runner{exec: exec, logger: logger}
}

// WithListener returns a Runner that reports step events to l.
func (r *Runner) WithListener(l Listener) *Runner {
	return &Runner{exec: r.exec, logger: r.logger, listener: l}
}

// Execute runs the steps in order and returns the report.
//
// Later steps may assume the state established by earlier ones, so
// execution is single-threaded and sequential. A failing step with
// Fatal criticality aborts the run; the report still covers everything
// up to and including that step. Cancellation is honored between steps:
// the current step finishes, the rest are not started.
func (r *Runner) Execute(ctx context.Context, steps []step.Step) RunReport {
	start := time.Now()
	results := make([]StepResult, 0, len(steps))
	interrupted := false

	for _, s := range steps {
		select {
		case <-ctx.Done():
			interrupted = true
		default:
		}
		if interrupted {
			break
		}

		if r.listener != nil {
			r.listener.StepStarted(s)
		}

		result := r.executeStep(ctx, s)
		results = append(results, result)

		if r.listener != nil {
			r.listener.StepCompleted(result)
		}

		if result.FatalFailure() {
			r.logger.Error(ctx, "fatal step failed, aborting run",
				ports.F("step", s.ID().String()))
			break
		}
	}

	return NewRunReport(r.exec.Mode(), results).
		WithStartedAt(start).
		WithDuration(time.Since(start)).
		WithInterrupted(interrupted)
}

// executeStep runs a single step: probe, then (mode permitting) action,
// then verification.
func (r *Runner) executeStep(ctx context.Context, s step.Step) StepResult {
	satisfied, probeErr := s.Probe().IsSatisfied(ctx)
	if probeErr != nil {
		// A check that cannot run means not satisfied, never a step
		// failure: the absent tool is the expected case.
		absorbed := step.NewProbeFailedError(s.Probe().Describe(), probeErr).
			WithStepID(s.ID().String())
		r.logger.Debug(ctx, "probe could not run, treating as unsatisfied",
			ports.F("step", s.ID().String()),
			ports.F("error", absorbed.Error()))
		satisfied = false
	}

	if satisfied {
		return NewStepResult(s.ID(), s.Title(), step.OutcomeAlreadySatisfied).
			WithCriticality(s.Criticality()).
			WithDetail(s.Probe().Describe())
	}

	commands := s.Action().Commands()

	if r.exec.Mode().DryRun() {
		// Report what live mode would run, without invoking the action.
		return NewStepResult(s.ID(), s.Title(), step.OutcomeSimulated).
			WithCriticality(s.Criticality()).
			WithDetail(s.Probe().Describe()).
			WithCommands(commands)
	}

	start := time.Now()
	if err := s.Action().Execute(ctx, r.exec); err != nil {
		return NewStepResult(s.ID(), s.Title(), step.OutcomeFailed).
			WithCriticality(s.Criticality()).
			WithDuration(time.Since(start)).
			WithCommands(commands).
			WithRemedy(s.Remedy()).
			WithError(err)
	}

	if verify, ok := s.Verify(); ok {
		confirmed, verifyErr := verify.IsSatisfied(ctx)
		if verifyErr != nil || !confirmed {
			failure := step.NewVerifyFailedError(verify.Describe()).
				WithStepID(s.ID().String())
			if verifyErr != nil {
				failure = failure.WithUnderlying(verifyErr)
			}
			return NewStepResult(s.ID(), s.Title(), step.OutcomeFailed).
				WithCriticality(s.Criticality()).
				WithDuration(time.Since(start)).
				WithCommands(commands).
				WithRemedy(s.Remedy()).
				WithError(failure)
		}
	}

	return NewStepResult(s.ID(), s.Title(), step.OutcomeApplied).
		WithCriticality(s.Criticality()).
		WithDuration(time.Since(start)).
		WithCommands(commands)
}
