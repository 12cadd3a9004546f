package command

import "github.com/felixgeelhaar/airstrip/internal/ports"

// ForMode selects the runner for a pipeline run. The choice is made once,
// before any step executes, and every action invocation for that run goes
// through the returned runner.
func ForMode(mode ports.Mode, logger ports.Logger) ports.CommandRunner {
	if mode.DryRun() {
		return NewSimRunner(logger)
	}
	return NewRealRunner()
}
