//go:build integration

package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/airstrip/internal/adapters/logging"
	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/stack"
	"github.com/felixgeelhaar/airstrip/internal/testutil"
	"github.com/felixgeelhaar/airstrip/internal/testutil/mocks"
)

// satisfiedHost arranges PATH, HOME, the filesystem, and the query
// runner so every built-in stage probes as already satisfied. Tests
// then break exactly the pieces their scenario needs; sequences and
// errors registered afterwards take precedence over these defaults.
func satisfiedHost(t *testing.T, fs *mocks.FileSystem, query *mocks.CommandRunner, model string) {
	t.Helper()

	t.Setenv("PATH", testutil.FakeBinDir(t, "brew", "colima", "docker", "ollama"))
	home := testutil.IsolateHome(t)

	fs.AddFile(filepath.Join(home, "Library/LaunchAgents/homebrew.mxcl.colima.plist"), "")
	fs.AddFile(filepath.Join(home, ".docker/config.json"), `{"currentContext":"colima"}`)

	query.AddResult("colima", []string{"status"}, ports.CommandResult{
		ExitCode: 0, Stdout: "colima is running",
	})
	query.AddResult("docker", []string{"info"}, ports.CommandResult{ExitCode: 0})
	query.AddResult("ollama", []string{"list"}, ports.CommandResult{
		ExitCode: 0, Stdout: "NAME\n" + model + ":latest  abc123  2.0 GB",
	})
	query.AddResult("docker", []string{
		"ps", "-a", "--filter", "name=^/open-webui$", "--format", "{{.State}}",
	}, ports.CommandResult{ExitCode: 0, Stdout: "running\n"})
}

// TestStackPipeline_StartsStoppedVM runs the default stack against a
// host where only the Colima VM is down. Exactly one command should be
// spawned, and the verify re-check sees the VM come up.
func TestStackPipeline_StartsStoppedVM(t *testing.T) {
	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()
	satisfiedHost(t, fs, query, "llama3.2")

	query.AddResultSequence("colima", []string{"status"},
		ports.CommandResult{ExitCode: 1, Stderr: "colima is not running"},
		ports.CommandResult{ExitCode: 0, Stdout: "colima is running"},
	)

	cfg, err := stack.NewLoader(fs).Load("")
	require.NoError(t, err)

	exec := mocks.NewCommandRunner()
	exec.AddResult("colima", []string{"start", "--cpu", "4", "--memory", "8", "--disk", "60"},
		ports.CommandResult{ExitCode: 0})

	report := pipeline.NewRunner(exec, logging.NewNopLogger()).
		Execute(context.Background(), stack.Build(cfg, query, fs))

	summary := report.Summary()
	assert.Equal(t, 8, summary.AlreadySatisfied)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, report.ExitCode())

	testutil.AssertOutcome(t, report, stack.StageColimaVM, step.OutcomeApplied)
	testutil.AssertRan(t, exec, "colima", "start", "--cpu", "4", "--memory", "8", "--disk", "60")
	assert.Len(t, exec.Calls(), 1, "satisfied stages must not spawn anything")
}

// TestStackPipeline_EngineGateAbortsRun breaks the Docker readiness
// gate, the one fatal stage of the default stack.
func TestStackPipeline_EngineGateAbortsRun(t *testing.T) {
	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()
	satisfiedHost(t, fs, query, "llama3.2")

	query.AddError("docker", []string{"info"}, errors.New("exit status 1"))

	cfg, err := stack.NewLoader(fs).Load("")
	require.NoError(t, err)

	exec := mocks.NewCommandRunner()
	report := pipeline.NewRunner(exec, logging.NewNopLogger()).
		Execute(context.Background(), stack.Build(cfg, query, fs))

	assert.Equal(t, 6, report.Len(), "nothing after the fatal stage is reached")
	assert.Equal(t, 1, report.ExitCode())
	testutil.AssertOutcome(t, report, stack.StageDockerEngine, step.OutcomeFailed)

	failure, fatal := report.FatalFailure()
	require.True(t, fatal)
	assert.Contains(t, failure.Remedy(), "colima status")

	testutil.AssertRan(t, exec, "docker", "info")
	testutil.AssertDidNotRun(t, exec, "ollama")
}

// TestStackPipeline_RecoverableFailureContinues lets the Ollama install
// fail and checks the run carries on: the model pull still happens and
// the exit posture stays clean.
func TestStackPipeline_RecoverableFailureContinues(t *testing.T) {
	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()
	satisfiedHost(t, fs, query, "llama3.2")

	// No ollama stub on PATH, and the listing flips from empty to
	// populated once the pull ran.
	t.Setenv("PATH", testutil.FakeBinDir(t, "brew", "colima", "docker"))
	query.AddResultSequence("ollama", []string{"list"},
		ports.CommandResult{ExitCode: 1, Stderr: "could not connect to ollama"},
		ports.CommandResult{ExitCode: 0, Stdout: "llama3.2:latest  abc123  2.0 GB"},
	)

	cfg, err := stack.NewLoader(fs).Load("")
	require.NoError(t, err)

	exec := mocks.NewCommandRunner()
	exec.AddResult("brew", []string{"install", "ollama"}, ports.CommandResult{
		ExitCode: 1, Stderr: "Error: ollama: no bottle available",
	})
	exec.AddResult("ollama", []string{"pull", "llama3.2"}, ports.CommandResult{ExitCode: 0})

	report := pipeline.NewRunner(exec, logging.NewNopLogger()).
		Execute(context.Background(), stack.Build(cfg, query, fs))

	assert.Equal(t, 9, report.Len(), "a recoverable failure never stops the run")
	assert.Equal(t, 0, report.ExitCode(), "recoverable failures keep exit code zero")

	summary := report.Summary()
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 7, summary.AlreadySatisfied)

	testutil.AssertOutcome(t, report, stack.StageOllama, step.OutcomeFailed)
	testutil.AssertOutcome(t, report, stack.StageModel, step.OutcomeApplied)
	testutil.AssertRan(t, exec, "ollama", "pull", "llama3.2")

	for _, result := range report.Results() {
		if result.StepID().String() == stack.StageOllama {
			assert.Error(t, result.Error())
			assert.Contains(t, result.Remedy(), "brew install ollama")
			assert.False(t, result.FatalFailure())
		}
	}
}

// TestStackPipeline_DryRunSpawnsNothing simulates a completely fresh
// machine: every step reports the commands it would run, and the
// executor is never touched.
func TestStackPipeline_DryRunSpawnsNothing(t *testing.T) {
	t.Setenv("PATH", testutil.FakeBinDir(t))
	testutil.IsolateHome(t)

	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()

	cfg, err := stack.NewLoader(fs).Load("")
	require.NoError(t, err)

	exec := mocks.NewCommandRunner()
	exec.SetMode(ports.ModeDryRun)

	report := pipeline.NewRunner(exec, logging.NewNopLogger()).
		Execute(context.Background(), stack.Build(cfg, query, fs))

	assert.Equal(t, 9, report.Summary().Simulated)
	assert.Equal(t, 0, report.ExitCode())
	assert.True(t, report.Mode().DryRun())
	testutil.AssertNothingRan(t, exec)

	// The simulated transcript carries the exact live commands.
	for _, result := range report.Results() {
		if result.StepID().String() == stack.StageColimaVM {
			require.Len(t, result.Commands(), 1)
			assert.Equal(t, "colima start --cpu 4 --memory 8 --disk 60",
				result.Commands()[0].String())
		}
	}
}

// TestStackPipeline_CustomStepRunsOnce checks the idempotency contract
// for manifest-defined steps: the first run applies, the second run
// sees the creates marker and skips.
func TestStackPipeline_CustomStepRunsOnce(t *testing.T) {
	fs := mocks.NewFileSystem()
	query := mocks.NewCommandRunner()
	satisfiedHost(t, fs, query, "llama3.2")

	manifest := testutil.NewManifestBuilder().
		WithStep(testutil.CustomStep{
			Name:    "jupyter",
			Command: "docker run -d --name jupyter jupyter/base-notebook",
			Creates: "~/.airstrip/jupyter",
		}).
		Build()
	fs.AddFile("airstrip.yaml", manifest)

	cfg, err := stack.NewLoader(fs).Load("")
	require.NoError(t, err)

	exec := mocks.NewCommandRunner()
	exec.AddResult("sh", []string{"-c", "docker run -d --name jupyter jupyter/base-notebook"},
		ports.CommandResult{ExitCode: 0})

	steps := stack.Build(cfg, query, fs)
	runner := pipeline.NewRunner(exec, logging.NewNopLogger())

	first := runner.Execute(context.Background(), steps)
	testutil.AssertOutcome(t, first, "jupyter", step.OutcomeApplied)
	testutil.AssertRan(t, exec, "sh", "-c", "docker run -d --name jupyter jupyter/base-notebook")

	// The command left its marker behind; a re-run changes nothing.
	fs.AddFile(ports.ExpandPath("~/.airstrip/jupyter"), "")
	exec.Reset()

	second := runner.Execute(context.Background(), steps)
	testutil.AssertOutcome(t, second, "jupyter", step.OutcomeAlreadySatisfied)
	testutil.AssertNothingRan(t, exec)
}
