package main

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/airstrip/internal/app"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
)

func TestPlanCmd_IsSubcommandOfRoot(t *testing.T) {
	t.Parallel()

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "plan" {
			found = true
			break
		}
	}
	assert.True(t, found, "plan should be a subcommand of root")
}

func TestRunPlan_PrintsPreview(t *testing.T) {
	fake := newFakeAirstripClient()
	fake.preview = &app.Preview{Steps: []app.PreviewStep{
		{ID: "homebrew", Title: "Homebrew", Satisfied: true, Criticality: step.Recoverable},
		{ID: "model", Title: "Model llama3.2", Satisfied: false, Criticality: step.Recoverable},
	}}
	restore := overrideNewPlanAirstrip(fake)
	defer restore()

	err := runPlan(planCmd, nil)
	require.NoError(t, err)
	assert.True(t, fake.planCalled)
	assert.True(t, fake.printPlanCalled)
	assert.Empty(t, fake.planConfig, "empty path lets the loader search and fall back")
}

func TestRunPlan_PlanErrorIsWrapped(t *testing.T) {
	fake := newFakeAirstripClient()
	fake.planErr = errors.New("failed to load config: yaml: line 3")
	restore := overrideNewPlanAirstrip(fake)
	defer restore()

	err := runPlan(planCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan failed")
	assert.False(t, fake.printPlanCalled)
}

func overrideNewPlanAirstrip(client *fakeAirstripClient) func() {
	prev := newPlanAirstrip
	newPlanAirstrip = func(_ io.Writer) airstripClient { return client }
	return func() { newPlanAirstrip = prev }
}
