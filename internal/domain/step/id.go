// Package step defines the provisioning step model: a named unit that
// couples an existence probe with the action that establishes it, plus
// the error taxonomy shared by probes, actions, and the pipeline.
package step

import (
	"errors"
	"regexp"
	"strings"
)

// StepID uniquely identifies a step within the pipeline.
// Format: lowercase kebab-case (e.g. "docker-engine", "open-webui").
type StepID struct {
	value string
}

// Errors for StepID validation.
var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID format invalid: must be lowercase alphanumeric with hyphens")
)

// stepIDPattern validates step ID format.
// Must start with a letter or digit, no spaces, no uppercase.
var stepIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// NewStepID creates a new StepID from a string.
func NewStepID(value string) (StepID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StepID{}, ErrEmptyStepID
	}

	if !stepIDPattern.MatchString(trimmed) {
		return StepID{}, ErrInvalidStepID
	}

	return StepID{value: trimmed}, nil
}

// MustNewStepID creates a new StepID from a string, panicking on error.
// Use this for compile-time known values that should never fail validation.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID: " + value + ": " + err.Error())
	}
	return id
}

// String returns the string representation.
func (id StepID) String() string {
	return id.value
}

// Equals checks equality with another StepID.
func (id StepID) Equals(other StepID) bool {
	return id.value == other.value
}

// IsZero returns true if this is a zero-value StepID.
func (id StepID) IsZero() bool {
	return id.value == ""
}
