package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/testutil/mocks"
)

func buildDefault(t *testing.T) []step.Step {
	t.Helper()
	return Build(DefaultConfig(), mocks.NewCommandRunner(), mocks.NewFileSystem())
}

func findStep(t *testing.T, steps []step.Step, id string) step.Step {
	t.Helper()
	for _, s := range steps {
		if s.ID().String() == id {
			return s
		}
	}
	t.Fatalf("step %s not in stack", id)
	return step.Step{}
}

func commandLines(s step.Step) []string {
	specs := s.Action().Commands()
	lines := make([]string, len(specs))
	for i, spec := range specs {
		lines[i] = spec.String()
	}
	return lines
}

func TestBuild_DefaultStackOrder(t *testing.T) {
	steps := buildDefault(t)

	require.Len(t, steps, len(StageIDs()))
	for i, want := range StageIDs() {
		assert.Equal(t, want, steps[i].ID().String(), "stage %d", i)
	}
}

func TestBuild_OnlyDockerEngineIsFatalByDefault(t *testing.T) {
	for _, s := range buildDefault(t) {
		want := step.Recoverable
		if s.ID().String() == StageDockerEngine {
			want = step.Fatal
		}
		assert.Equal(t, want, s.Criticality(), "step %s", s.ID())
	}
}

func TestBuild_DockerEngineRemedy(t *testing.T) {
	engine := findStep(t, buildDefault(t), StageDockerEngine)
	assert.Equal(t, "Docker is not responding. Check Colima status: colima status", engine.Remedy())
}

func TestBuild_CommandLines(t *testing.T) {
	steps := buildDefault(t)

	assert.Equal(t, []string{"brew install colima docker"},
		commandLines(findStep(t, steps, StageColima)))
	assert.Equal(t, []string{"colima start --cpu 4 --memory 8 --disk 60"},
		commandLines(findStep(t, steps, StageColimaVM)))
	assert.Equal(t, []string{"docker context use colima"},
		commandLines(findStep(t, steps, StageDockerContext)))
	assert.Equal(t, []string{"docker info"},
		commandLines(findStep(t, steps, StageDockerEngine)))
	assert.Equal(t, []string{"brew install ollama", "brew services start ollama"},
		commandLines(findStep(t, steps, StageOllama)))
	assert.Equal(t, []string{"ollama pull llama3.2"},
		commandLines(findStep(t, steps, StageModel)))
}

func TestBuild_OpenWebUIRecreatesContainer(t *testing.T) {
	webui := findStep(t, buildDefault(t), StageOpenWebUI)
	specs := webui.Action().Commands()

	require.Len(t, specs, 2)
	assert.Equal(t, "docker rm -f open-webui", specs[0].String())
	assert.True(t, specs[0].IgnoreExit, "removing a container that may not exist is best effort")
	assert.Equal(t,
		"docker run -d -p 3000:8080 --add-host=host.docker.internal:host-gateway "+
			"-e OLLAMA_BASE_URL=http://host.docker.internal:11434 "+
			"-v open-webui:/app/backend/data --name open-webui --restart always "+
			"ghcr.io/open-webui/open-webui:main",
		specs[1].String())
}

func TestBuild_VerifyProbes(t *testing.T) {
	steps := buildDefault(t)

	for _, id := range []string{StageHomebrew, StageColima, StageColimaVM, StageDockerContext, StageOllama, StageModel, StageOpenWebUI} {
		_, ok := findStep(t, steps, id).Verify()
		assert.True(t, ok, "step %s should verify after acting", id)
	}
	for _, id := range []string{StageColimaAutostart, StageDockerEngine} {
		_, ok := findStep(t, steps, id).Verify()
		assert.False(t, ok, "step %s has no separate verification", id)
	}
}

func TestBuild_AutostartDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Autostart = false

	steps := Build(cfg, mocks.NewCommandRunner(), mocks.NewFileSystem())

	require.Len(t, steps, len(StageIDs())-1)
	for _, s := range steps {
		assert.NotEqual(t, StageColimaAutostart, s.ID().String())
	}
}

func TestBuild_AppliesCriticalityOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overrides[StageDockerEngine] = step.Recoverable
	cfg.Overrides[StageModel] = step.Fatal

	steps := Build(cfg, mocks.NewCommandRunner(), mocks.NewFileSystem())

	assert.Equal(t, step.Recoverable, findStep(t, steps, StageDockerEngine).Criticality())
	assert.Equal(t, step.Fatal, findStep(t, steps, StageModel).Criticality())
}

func TestBuild_ConfiguredModelAndPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "qwen2.5-coder"
	cfg.WebUI.Port = 8090

	steps := Build(cfg, mocks.NewCommandRunner(), mocks.NewFileSystem())

	model := findStep(t, steps, StageModel)
	assert.Equal(t, "Model qwen2.5-coder", model.Title())
	assert.Equal(t, []string{"ollama pull qwen2.5-coder"}, commandLines(model))

	webui := findStep(t, steps, StageOpenWebUI)
	assert.Contains(t, webui.Action().Commands()[1].String(), "-p 8090:8080")
}

func TestBuild_AppendsCustomSteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Custom = []CustomStep{{
		ID:          step.MustNewStepID("install-jq"),
		Title:       "Install Jq",
		Command:     "brew install jq",
		Creates:     "/opt/homebrew/bin/jq",
		Criticality: step.Fatal,
	}}

	steps := Build(cfg, mocks.NewCommandRunner(), mocks.NewFileSystem())

	last := steps[len(steps)-1]
	assert.Equal(t, "install-jq", last.ID().String())
	assert.Equal(t, "Install Jq", last.Title())
	assert.Equal(t, step.Fatal, last.Criticality())
	assert.Equal(t, []string{"sh -c brew install jq"}, commandLines(last))
	assert.Equal(t, "/opt/homebrew/bin/jq present", last.Probe().Describe())
}

func TestConfig_Endpoints(t *testing.T) {
	assert.Equal(t, Endpoints{
		WebUI:  "http://localhost:3000",
		Ollama: "http://127.0.0.1:11434",
	}, DefaultConfig().Endpoints())

	cfg := DefaultConfig()
	cfg.WebUI.Port = 8090
	assert.Equal(t, "http://localhost:8090", cfg.Endpoints().WebUI)
}
