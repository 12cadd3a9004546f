// Package probe implements the existence checks that decide whether a
// provisioning step needs to run.
//
// Probes answer one question: is the goal condition already true? They
// never change system state. Checks that need to ask an external tool
// (docker, ollama, brew) go through a query runner that is always live,
// even when the provisioning run itself is a dry run: reading state is
// not a side effect, and skipping the checks would make dry-run output
// useless.
package probe

import (
	"context"
	"errors"
	"os/exec"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
)

// Binary reports whether a program resolves on PATH.
type Binary struct {
	program  string
	lookPath func(string) (string, error)
}

// BinaryOnPath creates a probe satisfied when program is on PATH.
func BinaryOnPath(program string) Binary {
	return Binary{program: program, lookPath: exec.LookPath}
}

// IsSatisfied implements step.Probe.
func (b Binary) IsSatisfied(context.Context) (bool, error) {
	if _, err := b.lookPath(b.program); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Describe implements step.Probe.
func (b Binary) Describe() string {
	return b.program + " on PATH"
}

// Ensure Binary implements step.Probe.
var _ step.Probe = Binary{}
