package step

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// Error codes for the step error taxonomy.
const (
	// ErrCodeProbeFailed marks a check that could not run. Absorbed by
	// the pipeline: the step is treated as not satisfied.
	ErrCodeProbeFailed = "PROBE_FAILED"
	// ErrCodeActionFailed marks a command that ran and exited non-zero.
	ErrCodeActionFailed = "ACTION_FAILED"
	// ErrCodeVerifyFailed marks a post-action verification that did not
	// confirm the goal.
	ErrCodeVerifyFailed = "VERIFY_FAILED"
	// ErrCodeExecFailed marks a process the executor could not start at
	// all, as opposed to one that ran and failed.
	ErrCodeExecFailed = "EXEC_FAILED"
	// ErrCodeConfigInvalid marks a stack configuration problem.
	ErrCodeConfigInvalid = "CONFIG_INVALID"
)

// StepError represents a user-facing provisioning error with an
// actionable suggestion.
type StepError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("step %q: %s", e.StepID, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.StepID != "" {
		b.WriteString(fmt.Sprintf("\n  Step: %s", e.StepID))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  Suggestion: %s", e.Suggestion))
	}
	if e.Underlying != nil {
		b.WriteString(fmt.Sprintf("\n  Cause: %s", e.Underlying.Error()))
	}

	return b.String()
}

// NewStepError creates a new StepError with the given code and message.
func NewStepError(code, message string) *StepError {
	return &StepError{
		Code:    code,
		Message: message,
	}
}

// WithStepID returns a new StepError with step ID set.
func (e *StepError) WithStepID(stepID string) *StepError {
	return &StepError{
		Code:       e.Code,
		Message:    e.Message,
		StepID:     stepID,
		Suggestion: e.Suggestion,
		Underlying: e.Underlying,
	}
}

// WithSuggestion returns a new StepError with suggestion set.
func (e *StepError) WithSuggestion(suggestion string) *StepError {
	return &StepError{
		Code:       e.Code,
		Message:    e.Message,
		StepID:     e.StepID,
		Suggestion: suggestion,
		Underlying: e.Underlying,
	}
}

// WithUnderlying returns a new StepError wrapping another error.
func (e *StepError) WithUnderlying(err error) *StepError {
	return &StepError{
		Code:       e.Code,
		Message:    e.Message,
		StepID:     e.StepID,
		Suggestion: e.Suggestion,
		Underlying: err,
	}
}

// Taxonomy constructors.

// NewProbeFailedError creates an error for a probe whose check could not
// run. The pipeline absorbs it; it surfaces only in debug logs and
// result detail.
func NewProbeFailedError(describe string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeProbeFailed,
		Message:    fmt.Sprintf("check %q could not run", describe),
		Suggestion: "Treated as not satisfied; the step will attempt to apply.",
		Underlying: err,
	}
}

// NewActionFailedError creates an error for a command that exited
// non-zero.
func NewActionFailedError(spec CommandSpec, result ports.CommandResult) *StepError {
	msg := fmt.Sprintf("%s exited with code %d", spec.String(), result.ExitCode)
	if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return &StepError{
		Code:    ErrCodeActionFailed,
		Message: msg,
	}
}

// NewVerifyFailedError creates an error for a verification probe that
// did not confirm the step's goal after a successful action.
func NewVerifyFailedError(describe string) *StepError {
	return &StepError{
		Code:       ErrCodeVerifyFailed,
		Message:    fmt.Sprintf("verification failed: %s", describe),
		Suggestion: "The action reported success but its effect could not be confirmed. Re-run to retry, or check the tool's own logs.",
	}
}

// NewExecutionError creates an error for a process that could not be
// started, distinct from one that ran and exited non-zero.
func NewExecutionError(spec CommandSpec, err error) *StepError {
	return &StepError{
		Code:       ErrCodeExecFailed,
		Message:    fmt.Sprintf("could not start %q", spec.Program),
		Suggestion: fmt.Sprintf("Verify %s is installed and on PATH.", spec.Program),
		Underlying: err,
	}
}
