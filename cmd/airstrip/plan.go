package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what airstrip up would do",
	Long: `Plan probes every step of the configured stack and shows which
ones a run would apply, without changing anything.

This command:
1. Loads the stack configuration
2. Probes the current machine state
3. Lists satisfied steps and the commands pending steps would run`,
	RunE: runPlan,
}

var newPlanAirstrip = func(out io.Writer) airstripClient {
	return &airstripAdapter{app.New(out)}
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	airstrip := newPlanAirstrip(os.Stdout).WithVerbose(verbose)

	preview, err := airstrip.Plan(ctx, cfgFile)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	airstrip.PrintPlan(preview)

	return nil
}
