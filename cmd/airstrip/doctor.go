package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/app"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the provisioned stack",
	Long: `Doctor checks the machine against the configured stack: binaries
on PATH, the Colima VM, the Docker engine, the Ollama API, the pulled
model, and the Open WebUI container.

Issues are reported with a suggestion for fixing each one. A healthy
stack also prints its service endpoints.

Examples:
  airstrip doctor               # Check stack health
  airstrip doctor -c ai.yaml    # Check against a specific config`,
	RunE: runDoctor,
}

var newDoctorAirstrip = func(out io.Writer) airstripClient {
	return &airstripAdapter{app.New(out)}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	airstrip := newDoctorAirstrip(os.Stdout).WithVerbose(verbose)

	report, err := airstrip.Doctor(ctx, cfgFile)
	if err != nil {
		return fmt.Errorf("doctor failed: %w", err)
	}

	airstrip.PrintDoctorReport(report)

	return nil
}
