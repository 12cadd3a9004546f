package step

import "strings"

// CommandSpec describes a single external command invocation: the program
// and its arguments, exactly as the executor would spawn them. Specs are
// the unit of dry-run reporting, so what a spec renders as is what live
// mode runs.
type CommandSpec struct {
	Program string
	Args    []string

	// IgnoreExit treats a non-zero exit from this command as success.
	// Used for best-effort cleanup (e.g. removing a container that may
	// not exist before recreating it).
	IgnoreExit bool
}

// Command creates a CommandSpec for program with the given arguments.
func Command(program string, args ...string) CommandSpec {
	return CommandSpec{Program: program, Args: args}
}

// BestEffort creates a CommandSpec whose non-zero exit is ignored.
func BestEffort(program string, args ...string) CommandSpec {
	return CommandSpec{Program: program, Args: args, IgnoreExit: true}
}

// String renders the spec as a single shell-style line.
func (c CommandSpec) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}
