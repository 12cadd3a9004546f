// Package app provides the main application logic for airstrip.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/airstrip/internal/adapters/command"
	"github.com/felixgeelhaar/airstrip/internal/adapters/filesystem"
	"github.com/felixgeelhaar/airstrip/internal/adapters/logging"
	"github.com/felixgeelhaar/airstrip/internal/doctor"
	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/history"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/stack"
	"github.com/felixgeelhaar/airstrip/internal/tui"
	"github.com/felixgeelhaar/airstrip/internal/tui/ui"
)

// Airstrip is the main application orchestrator.
type Airstrip struct {
	out         io.Writer
	logger      ports.Logger
	fs          ports.FileSystem
	query       ports.CommandRunner
	loader      *stack.Loader
	history     *history.Store
	styles      ui.Styles
	executorFor func(ports.Mode) ports.CommandRunner
}

// New creates a new Airstrip application wired to the real host.
func New(out io.Writer) *Airstrip {
	fs := filesystem.NewRealFileSystem()

	return &Airstrip{
		out: out,
		logger: logging.NewConsoleLogger(
			logging.WithOutput(os.Stderr),
			logging.WithLevel(ports.LevelWarn)),
		fs:      fs,
		query:   command.NewRealRunner(),
		loader:  stack.NewLoader(fs),
		history: history.NewStore(fs, history.DefaultDir()),
		styles:  ui.DefaultStyles(),
	}
}

// WithLogger sets the logger.
func (a *Airstrip) WithLogger(logger ports.Logger) *Airstrip {
	a.logger = logger
	return a
}

// WithFileSystem replaces the filesystem and everything built on it.
func (a *Airstrip) WithFileSystem(fs ports.FileSystem) *Airstrip {
	a.fs = fs
	a.loader = stack.NewLoader(fs)
	a.history = history.NewStore(fs, history.DefaultDir())
	return a
}

// WithQueryRunner sets the runner used for read-only probe commands.
// Probes stay on a live runner even for simulated runs; checking state
// is not a side effect.
func (a *Airstrip) WithQueryRunner(query ports.CommandRunner) *Airstrip {
	a.query = query
	return a
}

// WithHistory sets the run history store.
func (a *Airstrip) WithHistory(store *history.Store) *Airstrip {
	a.history = store
	return a
}

// WithExecutorFactory overrides how the mode-selected executor is built.
func (a *Airstrip) WithExecutorFactory(factory func(ports.Mode) ports.CommandRunner) *Airstrip {
	a.executorFor = factory
	return a
}

// WithVerbose lowers the log threshold to include debug output.
func (a *Airstrip) WithVerbose(verbose bool) *Airstrip {
	if verbose {
		a.logger.SetLevel(ports.LevelDebug)
	}
	return a
}

// History returns the run history store.
func (a *Airstrip) History() *history.Store {
	return a.history
}

// executor returns the command runner actions go through for mode.
func (a *Airstrip) executor(mode ports.Mode) ports.CommandRunner {
	if a.executorFor != nil {
		return a.executorFor(mode)
	}
	return command.ForMode(mode, a.logger)
}

// LoadConfig loads the stack configuration, falling back to defaults
// when no config file exists.
func (a *Airstrip) LoadConfig(path string) (*stack.Config, error) {
	return a.loader.Load(path)
}

// PreviewStep is one step of a plan preview.
type PreviewStep struct {
	ID          string
	Title       string
	Satisfied   bool
	Criticality step.Criticality
	Probe       string
	Commands    []step.CommandSpec
}

// Preview describes what a run would do, computed from probes alone.
type Preview struct {
	Steps []PreviewStep
}

// Pending counts the steps a run would act on.
func (p *Preview) Pending() int {
	pending := 0
	for _, s := range p.Steps {
		if !s.Satisfied {
			pending++
		}
	}
	return pending
}

// HasChanges reports whether any step needs action.
func (p *Preview) HasChanges() bool {
	return p.Pending() > 0
}

// Plan probes every step of the configured stack without changing
// anything and reports which ones a run would act on.
func (a *Airstrip) Plan(ctx context.Context, configPath string) (*Preview, error) {
	cfg, err := a.loader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	steps := stack.Build(cfg, a.query, a.fs)
	preview := &Preview{Steps: make([]PreviewStep, 0, len(steps))}

	for _, s := range steps {
		satisfied, probeErr := s.Probe().IsSatisfied(ctx)
		if probeErr != nil {
			// Same posture as the runner: a check that cannot run means
			// the step is not satisfied.
			a.logger.Debug(ctx, "probe could not run, treating as unsatisfied",
				ports.F("step", s.ID().String()),
				ports.F("error", probeErr.Error()))
			satisfied = false
		}
		preview.Steps = append(preview.Steps, PreviewStep{
			ID:          s.ID().String(),
			Title:       s.Title(),
			Satisfied:   satisfied,
			Criticality: s.Criticality(),
			Probe:       s.Probe().Describe(),
			Commands:    s.Action().Commands(),
		})
	}

	return preview, nil
}

// UpOptions configures one provisioning run.
type UpOptions struct {
	ConfigPath  string
	Mode        ports.Mode
	Interactive bool
}

// Up executes the configured stack and returns the run report. The
// report is complete even when a fatal step aborted the run; the exit
// decision stays with the caller via the report's ExitCode.
func (a *Airstrip) Up(ctx context.Context, opts UpOptions) (pipeline.RunReport, error) {
	cfg, err := a.loader.Load(opts.ConfigPath)
	if err != nil {
		return pipeline.RunReport{}, fmt.Errorf("failed to load config: %w", err)
	}

	steps := stack.Build(cfg, a.query, a.fs)
	runner := pipeline.NewRunner(a.executor(opts.Mode), a.logger)

	var report pipeline.RunReport
	if opts.Interactive {
		report, err = tui.RunUpProgress(ctx, runner, steps,
			tui.NewUpProgressOptions().WithDryRun(opts.Mode.DryRun()))
		if err != nil {
			return report, err
		}
	} else {
		a.printRunHeader(opts.Mode)
		report = runner.WithListener(newTranscript(a.out, a.styles)).Execute(ctx, steps)
	}

	a.PrintSummary(report)
	if a.shouldPrintEndpoints(report) {
		a.PrintEndpoints(cfg.Endpoints())
	}

	if opts.Mode == ports.ModeLive {
		// Simulated runs leave no trace; only live runs are recorded.
		if _, err := a.history.Save(ctx, report); err != nil {
			a.logger.Warn(ctx, "failed to save run history",
				ports.F("error", err.Error()))
		}
	}

	return report, nil
}

// shouldPrintEndpoints reports whether the run ended in a state where
// the stack's service URLs are worth printing.
func (a *Airstrip) shouldPrintEndpoints(report pipeline.RunReport) bool {
	if report.Interrupted() {
		return false
	}
	if _, fatal := report.FatalFailure(); fatal {
		return false
	}
	return !report.Mode().DryRun()
}

// Doctor checks the health of a provisioned stack.
func (a *Airstrip) Doctor(ctx context.Context, configPath string) (doctor.Report, error) {
	cfg, err := a.loader.Load(configPath)
	if err != nil {
		return doctor.Report{}, fmt.Errorf("failed to load config: %w", err)
	}
	return doctor.New(cfg, a.query).Run(ctx), nil
}

// LastRun returns the most recent persisted run.
func (a *Airstrip) LastRun(ctx context.Context) (history.Entry, error) {
	return a.history.Latest(ctx)
}
