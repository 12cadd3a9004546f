package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/airstrip/internal/adapters/logging"
	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/history"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/testutil/mocks"
)

// testHarness bundles an Airstrip wired entirely to mocks.
type testHarness struct {
	app   *Airstrip
	out   *bytes.Buffer
	query *mocks.CommandRunner
	exec  *mocks.CommandRunner
	fs    *mocks.FileSystem
	store *history.Store
}

func newTestHarness() *testHarness {
	out := &bytes.Buffer{}
	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()
	exec := mocks.NewCommandRunner()
	store := history.NewStore(fs, "/state/airstrip/runs")

	app := New(out).
		WithLogger(logging.NewNopLogger()).
		WithFileSystem(fs).
		WithQueryRunner(query).
		WithHistory(store).
		WithExecutorFactory(func(mode ports.Mode) ports.CommandRunner {
			exec.SetMode(mode)
			return exec
		})

	return &testHarness{app: app, out: out, query: query, exec: exec, fs: fs, store: store}
}

func TestUp_DryRunNeverSpawnsAndLeavesNoTrace(t *testing.T) {
	t.Parallel()

	h := newTestHarness()

	report, err := h.app.Up(context.Background(), UpOptions{Mode: ports.ModeDryRun})

	require.NoError(t, err)
	assert.True(t, report.Mode().DryRun())
	assert.Equal(t, 9, report.Len(), "dry-run reaches every built-in stage")
	assert.Empty(t, h.exec.Calls(), "simulated actions must not spawn commands")

	entries, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries, "simulated runs are not recorded")

	assert.Contains(t, h.out.String(), "dry-run")
	assert.Contains(t, h.out.String(), "Summary:")
	assert.NotContains(t, h.out.String(), "Endpoints")
}

func TestUp_LiveFatalAbortsRun(t *testing.T) {
	t.Parallel()

	h := newTestHarness()
	// No mocked result for docker info: the readiness gate cannot start
	// its command and the run must abort there.

	report, err := h.app.Up(context.Background(), UpOptions{Mode: ports.ModeLive})

	require.NoError(t, err)
	assert.Equal(t, 1, report.ExitCode())
	assert.Equal(t, 6, report.Len(), "steps after the aborting one are not reached")

	res, fatal := report.FatalFailure()
	require.True(t, fatal)
	assert.Equal(t, "docker-engine", res.StepID().String())

	assert.Contains(t, h.out.String(), "Aborted: Docker engine failed.")
	assert.Contains(t, h.out.String(), "colima status")
	assert.NotContains(t, h.out.String(), "Endpoints")

	entries, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1, "live runs are recorded even when they fail")
	assert.Equal(t, 1, entries[0].ExitCode)
}

func TestUp_LiveRecoverableFailuresExitZeroAndPrintEndpoints(t *testing.T) {
	t.Parallel()

	h := newTestHarness()
	h.query.AddResult("docker", []string{"info"}, ports.CommandResult{ExitCode: 0, Stdout: "Server Version: 28.0"})

	report, err := h.app.Up(context.Background(), UpOptions{Mode: ports.ModeLive})

	require.NoError(t, err)
	assert.Equal(t, 9, report.Len(), "recoverable failures do not stop the run")
	assert.Equal(t, 0, report.ExitCode(), "recoverable failures keep the exit code at zero")
	assert.Positive(t, report.Summary().Failed)

	assert.Contains(t, h.out.String(), "Endpoints")
	assert.Contains(t, h.out.String(), "http://localhost:3000")
	assert.Contains(t, h.out.String(), "http://127.0.0.1:11434")

	entries, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].ExitCode)
}

func TestUp_ConfigErrorSurfaced(t *testing.T) {
	t.Parallel()

	h := newTestHarness()
	h.fs.AddFile("airstrip.yaml", "model: [broken")

	_, err := h.app.Up(context.Background(), UpOptions{Mode: ports.ModeLive})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.Empty(t, h.exec.Calls())
}

func TestPlan_ListsEveryStageInOrder(t *testing.T) {
	t.Parallel()

	h := newTestHarness()

	preview, err := h.app.Plan(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, preview.Steps, 9)
	assert.Equal(t, "homebrew", preview.Steps[0].ID)
	assert.Equal(t, "open-webui", preview.Steps[8].ID)
	assert.True(t, preview.HasChanges(), "mocked host has pending steps")
	assert.Empty(t, h.exec.Calls(), "planning must not execute actions")

	h.app.PrintPlan(preview)
	assert.Contains(t, h.out.String(), "Airstrip Plan")
	assert.Contains(t, h.out.String(), "Run 'airstrip up' to execute this plan.")
}

func TestPlan_IncludesCustomSteps(t *testing.T) {
	t.Parallel()

	h := newTestHarness()
	h.fs.AddFile("airstrip.yaml", `
steps:
  - name: warm-cache
    command: curl -s http://127.0.0.1:11434/api/tags > /tmp/warm
    creates: /tmp/warm
`)

	preview, err := h.app.Plan(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, preview.Steps, 10)
	assert.Equal(t, "warm-cache", preview.Steps[9].ID)
	assert.Equal(t, "Warm Cache", preview.Steps[9].Title)
	assert.False(t, preview.Steps[9].Satisfied)
}

func TestDoctor_ReportsChecks(t *testing.T) {
	t.Parallel()

	h := newTestHarness()

	report, err := h.app.Doctor(context.Background(), "")

	require.NoError(t, err)
	assert.NotEmpty(t, report.Checks)
	assert.False(t, report.Healthy(), "mocked host cannot be healthy")
	assert.Equal(t, "http://127.0.0.1:11434", report.Endpoints.Ollama)

	h.app.PrintDoctorReport(report)
	assert.Contains(t, h.out.String(), "Airstrip Doctor")
	assert.Contains(t, h.out.String(), "issue(s) found")
}

func TestLastRun_NoRuns(t *testing.T) {
	t.Parallel()

	h := newTestHarness()

	_, err := h.app.LastRun(context.Background())

	assert.ErrorIs(t, err, history.ErrNoRuns)
}

func TestPrintSummary_Interrupted(t *testing.T) {
	t.Parallel()

	h := newTestHarness()
	report := pipeline.NewRunReport(ports.ModeLive, nil).WithInterrupted(true)

	h.app.PrintSummary(report)

	assert.Contains(t, h.out.String(), "Run interrupted before completion.")
}
