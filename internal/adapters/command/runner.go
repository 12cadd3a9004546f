// Package command provides the live and simulating command runners.
package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// RealRunner spawns external processes and captures their output.
//
// A non-zero exit from the invoked program is reported through
// CommandResult.ExitCode, not as an error; the returned error is reserved
// for the process failing to start at all (binary missing, permission
// denied), which callers treat as an execution failure. A run killed by
// context cancellation reports ctx.Err rather than the kill signal.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes a command and returns the result.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	// The kill that CommandContext issues surfaces as "signal: killed".
	// Report the cancellation itself so a retrying caller stops instead
	// of re-running an interrupted command.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Mode reports that this runner executes for real.
func (r *RealRunner) Mode() ports.Mode {
	return ports.ModeLive
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
