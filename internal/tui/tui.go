// Package tui provides terminal user interface entry points for airstrip.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
)

// UpProgressOptions configures the up progress TUI.
type UpProgressOptions struct {
	Quiet       bool
	ShowDetails bool
	DryRun      bool
}

// NewUpProgressOptions creates default up progress options.
func NewUpProgressOptions() UpProgressOptions {
	return UpProgressOptions{
		ShowDetails: true,
	}
}

// WithQuiet enables quiet mode.
func (o UpProgressOptions) WithQuiet(quiet bool) UpProgressOptions {
	o.Quiet = quiet
	return o
}

// WithDryRun marks the display as a dry-run preview. Display only; the
// executor the runner holds decides what actually happens.
func (o UpProgressOptions) WithDryRun(dryRun bool) UpProgressOptions {
	o.DryRun = dryRun
	return o
}

// programListener forwards pipeline events into the running program.
type programListener struct {
	p *tea.Program
}

var _ pipeline.Listener = programListener{}

func (l programListener) StepStarted(s step.Step) {
	l.p.Send(StepStartMsg{Step: s})
}

func (l programListener) StepCompleted(result pipeline.StepResult) {
	l.p.Send(StepCompleteMsg{Result: result})
}

// RunUpProgress executes the steps through the runner while rendering
// live progress. The pipeline runs in a separate goroutine; Ctrl+C
// cancels it between steps. The report covers every step that was
// reached, even when the display is torn down early.
func RunUpProgress(ctx context.Context, runner *pipeline.Runner, steps []step.Step, opts UpProgressOptions) (pipeline.RunReport, error) {
	model := newUpProgressModel(len(steps), opts.DryRun, opts)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithContext(ctx))

	reports := make(chan pipeline.RunReport, 1)
	go func() {
		report := runner.WithListener(programListener{p: p}).Execute(runCtx, steps)
		reports <- report
		p.Send(RunCompleteMsg{Report: report})
	}()

	finalModel, err := p.Run()
	if err != nil {
		cancel()
		report := <-reports
		if ctx.Err() != nil {
			// Outer cancellation killed the program; the report carries
			// the interruption, not an error.
			return report, nil
		}
		return report, fmt.Errorf("up progress failed: %w", err)
	}

	m, ok := finalModel.(upProgressModel)
	if !ok {
		cancel()
		return <-reports, fmt.Errorf("unexpected model type")
	}

	if m.cancelled {
		cancel()
	}
	return <-reports, nil
}
