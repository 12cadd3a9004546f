package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/app"
	"github.com/felixgeelhaar/airstrip/internal/doctor"
	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/history"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the local AI stack",
	Long: `Up runs every step of the configured stack in order.

Each step checks whether it is already satisfied before acting, so
re-running 'up' is always safe. A recoverable failure is reported and
the run continues; a fatal failure aborts the run.

Examples:
  airstrip up                 # Provision the stack
  airstrip up --dry-run       # Print commands without running them
  airstrip up --interactive   # Provision with a live progress UI`,
	RunE: runUp,
}

var (
	upDryRun      bool
	upInteractive bool
)

type airstripClient interface {
	Plan(context.Context, string) (*app.Preview, error)
	PrintPlan(*app.Preview)
	Up(context.Context, app.UpOptions) (pipeline.RunReport, error)
	Doctor(context.Context, string) (doctor.Report, error)
	PrintDoctorReport(doctor.Report)
	History() *history.Store
	WithVerbose(bool) airstripClient
}

type airstripAdapter struct {
	*app.Airstrip
}

var newAirstrip = func(out io.Writer) airstripClient {
	return &airstripAdapter{app.New(out)}
}

func (a *airstripAdapter) WithVerbose(verbose bool) airstripClient {
	a.Airstrip = a.Airstrip.WithVerbose(verbose)
	return a
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().BoolVarP(&upDryRun, "dry-run", "n", false, "Print commands without executing them")
	upCmd.Flags().BoolVarP(&upInteractive, "interactive", "i", false, "Show a live progress UI")
}

func runUp(_ *cobra.Command, _ []string) error {
	// Ctrl-C cancels between steps: the step in flight finishes, the
	// rest are skipped, and the partial report is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	airstrip := newAirstrip(os.Stdout).WithVerbose(verbose)

	mode := ports.ModeLive
	if upDryRun {
		mode = ports.ModeDryRun
	}

	report, err := airstrip.Up(ctx, app.UpOptions{
		ConfigPath:  cfgFile,
		Mode:        mode,
		Interactive: upInteractive,
	})
	if err != nil {
		return fmt.Errorf("up failed: %w", err)
	}

	// Recoverable failures keep exit code zero; only a fatal abort
	// makes the process fail.
	if report.ExitCode() != 0 {
		return fmt.Errorf("provisioning aborted")
	}

	return nil
}
