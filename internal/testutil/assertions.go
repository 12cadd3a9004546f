package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/testutil/mocks"
)

// AssertRan asserts that the runner spawned the exact command.
func AssertRan(t testing.TB, runner *mocks.CommandRunner, program string, args ...string) {
	t.Helper()

	for _, call := range runner.Calls() {
		if call.Command != program || len(call.Args) != len(args) {
			continue
		}
		match := true
		for i, arg := range args {
			if call.Args[i] != arg {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	assert.Fail(t, "command was not run",
		"expected %s %v in calls: %v", program, args, runner.Calls())
}

// AssertDidNotRun asserts that the runner never spawned the program,
// with any arguments.
func AssertDidNotRun(t testing.TB, runner *mocks.CommandRunner, program string) {
	t.Helper()

	for _, call := range runner.Calls() {
		if call.Command == program {
			assert.Fail(t, "command was run",
				"expected no %s invocation, got %s %v", program, call.Command, call.Args)
			return
		}
	}
}

// AssertNothingRan asserts that the runner spawned no commands at all.
func AssertNothingRan(t testing.TB, runner *mocks.CommandRunner) {
	t.Helper()
	assert.Empty(t, runner.Calls(), "expected no commands to be spawned")
}

// AssertOutcome asserts the outcome of one step in a run report.
func AssertOutcome(t testing.TB, report pipeline.RunReport, stepID string, want step.Outcome) {
	t.Helper()

	for _, result := range report.Results() {
		if result.StepID().String() == stepID {
			assert.Equal(t, want, result.Outcome(), "outcome of step %s", stepID)
			return
		}
	}
	assert.Fail(t, "step not in report", "no result for step %s", stepID)
}

// AssertYAMLEquals asserts that two YAML strings are semantically equal.
func AssertYAMLEquals(t testing.TB, expected, actual string, msgAndArgs ...any) {
	t.Helper()

	var expectedTree, actualTree any

	err := yaml.Unmarshal([]byte(expected), &expectedTree)
	require.NoError(t, err, "failed to parse expected YAML")

	err = yaml.Unmarshal([]byte(actual), &actualTree)
	require.NoError(t, err, "failed to parse actual YAML")

	assert.Equal(t, expectedTree, actualTree, msgAndArgs...)
}

// AssertErrorContains asserts that err contains the expected message.
func AssertErrorContains(t testing.TB, err error, expected string, msgAndArgs ...any) {
	t.Helper()

	require.Error(t, err)
	assert.Contains(t, err.Error(), expected, msgAndArgs...)
}
