package probe

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// Service reports whether a background service answers its status
// command. Satisfied when the command exits zero and, if a marker is
// configured, its stdout contains the marker.
type Service struct {
	query  ports.CommandRunner
	spec   step.CommandSpec
	marker string
	desc   string
}

// ServiceRunning creates a probe satisfied when the status command
// succeeds. desc names the condition for reports, e.g. "colima vm
// running".
func ServiceRunning(query ports.CommandRunner, desc string, spec step.CommandSpec) Service {
	return Service{query: query, spec: spec, desc: desc}
}

// WithOutputContaining additionally requires marker in the status
// command's stdout. Some status commands exit zero regardless of state
// and only report through their output.
func (s Service) WithOutputContaining(marker string) Service {
	s.marker = marker
	return s
}

// IsSatisfied implements step.Probe.
func (s Service) IsSatisfied(ctx context.Context) (bool, error) {
	result, err := s.query.Run(ctx, s.spec.Program, s.spec.Args...)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, nil
	}
	if s.marker != "" && !strings.Contains(result.Stdout, s.marker) {
		return false, nil
	}
	return true, nil
}

// Describe implements step.Probe.
func (s Service) Describe() string {
	return s.desc
}

// Ensure Service implements step.Probe.
var _ step.Probe = Service{}
