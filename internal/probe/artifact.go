package probe

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// File reports whether a path exists. Paths may start with ~/.
type File struct {
	fs   ports.FileSystem
	path string
}

// FileExists creates a probe satisfied when path exists.
func FileExists(fs ports.FileSystem, path string) File {
	return File{fs: fs, path: path}
}

// IsSatisfied implements step.Probe.
func (f File) IsSatisfied(context.Context) (bool, error) {
	return f.fs.Exists(ports.ExpandPath(f.path)), nil
}

// Describe implements step.Probe.
func (f File) Describe() string {
	return f.path + " present"
}

// Inventory reports whether an entry appears in the output of a listing
// command, e.g. a pulled model in "ollama list".
type Inventory struct {
	query  ports.CommandRunner
	spec   step.CommandSpec
	needle string
	desc   string
}

// InInventory creates a probe satisfied when the listing command
// succeeds and its stdout contains needle.
func InInventory(query ports.CommandRunner, desc string, spec step.CommandSpec, needle string) Inventory {
	return Inventory{query: query, spec: spec, needle: needle, desc: desc}
}

// IsSatisfied implements step.Probe.
func (i Inventory) IsSatisfied(ctx context.Context) (bool, error) {
	result, err := i.query.Run(ctx, i.spec.Program, i.spec.Args...)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, nil
	}
	return strings.Contains(result.Stdout, i.needle), nil
}

// Describe implements step.Probe.
func (i Inventory) Describe() string {
	return i.desc
}

// Ensure the artifact probes implement step.Probe.
var (
	_ step.Probe = File{}
	_ step.Probe = Inventory{}
)
