// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"strings"
)

// Mode selects between live execution and dry-run simulation.
// It is fixed for the lifetime of a pipeline run.
type Mode int

const (
	// ModeLive executes external commands for real.
	ModeLive Mode = iota
	// ModeDryRun logs commands without spawning processes.
	ModeDryRun
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	if m == ModeDryRun {
		return "dry-run"
	}
	return "live"
}

// DryRun returns true when the mode is ModeDryRun.
func (m Mode) DryRun() bool {
	return m == ModeDryRun
}

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// String renders the call as a single shell-style line.
func (c CommandCall) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandRunner executes shell commands. It is the single seam through
// which external processes are invoked: implementations either spawn the
// process (live) or record what would have been spawned (dry-run), and
// callers learn the active mode from the runner itself rather than from
// ambient state.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// Mode reports whether this runner executes or simulates.
	Mode() Mode
}
