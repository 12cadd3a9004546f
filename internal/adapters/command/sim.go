package command

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// SimRunner is the dry-run side of the executor seam. It never spawns a
// process: every Run call logs the command verbatim, records it, and
// returns a synthetic success with empty output.
type SimRunner struct {
	logger ports.Logger

	mu    sync.Mutex
	calls []ports.CommandCall
}

// NewSimRunner creates a SimRunner that logs would-be commands to logger.
func NewSimRunner(logger ports.Logger) *SimRunner {
	return &SimRunner{logger: logger}
}

// Run records and logs the command without executing it.
func (r *SimRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	call := ports.CommandCall{Command: command, Args: args}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info(ctx, "would execute", ports.F("command", call.String()))
	}

	return ports.CommandResult{ExitCode: 0}, nil
}

// Mode reports that this runner simulates.
func (r *SimRunner) Mode() ports.Mode {
	return ports.ModeDryRun
}

// Calls returns a copy of the commands recorded so far.
func (r *SimRunner) Calls() []ports.CommandCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]ports.CommandCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Ensure SimRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*SimRunner)(nil)
