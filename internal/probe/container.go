package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// State is the coarse lifecycle state of a named container.
type State string

const (
	// StateAbsent means no container with the name exists.
	StateAbsent State = "absent"
	// StateStopped means the container exists but is not running. Docker
	// reports finer states (exited, created, paused); the provisioner
	// only cares that the container is not serving.
	StateStopped State = "stopped"
	// StateRunning means the container is up.
	StateRunning State = "running"
)

// Container reports whether a named container is in a desired state.
type Container struct {
	query ports.CommandRunner
	name  string
	want  State
}

// ContainerInState creates a probe satisfied when the container named
// name is in the given state.
func ContainerInState(query ports.CommandRunner, name string, want State) Container {
	return Container{query: query, name: name, want: want}
}

// ContainerRunning creates a probe satisfied when the named container
// is up.
func ContainerRunning(query ports.CommandRunner, name string) Container {
	return ContainerInState(query, name, StateRunning)
}

// IsSatisfied implements step.Probe.
func (c Container) IsSatisfied(ctx context.Context) (bool, error) {
	state, err := c.state(ctx)
	if err != nil {
		return false, err
	}
	return state == c.want, nil
}

// state asks the docker CLI for the container's state. The name filter
// is anchored so "open-webui" does not match "open-webui-backup".
func (c Container) state(ctx context.Context) (State, error) {
	result, err := c.query.Run(ctx, "docker", "ps", "-a",
		"--filter", "name=^/"+c.name+"$",
		"--format", "{{.State}}")
	if err != nil {
		return StateAbsent, err
	}
	if !result.Success() {
		return StateAbsent, fmt.Errorf("docker ps exited with code %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	switch state := strings.TrimSpace(result.Stdout); state {
	case "":
		return StateAbsent, nil
	case "running":
		return StateRunning, nil
	default:
		return StateStopped, nil
	}
}

// Describe implements step.Probe.
func (c Container) Describe() string {
	return fmt.Sprintf("container %s %s", c.name, c.want)
}

// Ensure Container implements step.Probe.
var _ step.Probe = Container{}
