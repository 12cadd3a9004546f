package stack

import (
	"fmt"
	"strconv"
	"time"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/probe"
)

// Built-in stage ids, in execution order.
const (
	StageHomebrew        = "homebrew"
	StageColima          = "colima"
	StageColimaVM        = "colima-vm"
	StageColimaAutostart = "colima-autostart"
	StageDockerContext   = "docker-context"
	StageDockerEngine    = "docker-engine"
	StageOllama          = "ollama"
	StageModel           = "model"
	StageOpenWebUI       = "open-webui"
)

// colimaPlist is the launchd job brew services installs for Colima.
const colimaPlist = "~/Library/LaunchAgents/homebrew.mxcl.colima.plist"

// dockerEngineRemedy is printed when the Docker readiness gate fails.
const dockerEngineRemedy = "Docker is not responding. Check Colima status: colima status"

// StageIDs lists the built-in stage ids in execution order.
func StageIDs() []string {
	return []string{
		StageHomebrew,
		StageColima,
		StageColimaVM,
		StageColimaAutostart,
		StageDockerContext,
		StageDockerEngine,
		StageOllama,
		StageModel,
		StageOpenWebUI,
	}
}

func isStageID(id string) bool {
	for _, stage := range StageIDs() {
		if stage == id {
			return true
		}
	}
	return false
}

// Build assembles the ordered provisioning steps for cfg.
//
// query runs the read-only probe commands and must be live even when
// the provisioning run itself is simulated; actions run through
// whatever executor the pipeline was given.
func Build(cfg *Config, query ports.CommandRunner, fs ports.FileSystem) []step.Step {
	criticality := func(id string, fallback step.Criticality) step.Criticality {
		if override, ok := cfg.Overrides[id]; ok {
			return override
		}
		return fallback
	}

	steps := make([]step.Step, 0, len(StageIDs())+len(cfg.Custom))

	steps = append(steps, step.New(
		step.MustNewStepID(StageHomebrew), "Homebrew",
		probe.BinaryOnPath("brew"),
		step.RunCommands(step.Command("/bin/bash", "-c",
			"curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | /bin/bash"))).
		WithVerify(probe.BinaryOnPath("brew")).
		WithCriticality(criticality(StageHomebrew, step.Recoverable)).
		WithRemedy("Install Homebrew manually: https://brew.sh"))

	steps = append(steps, step.New(
		step.MustNewStepID(StageColima), "Colima and Docker CLI",
		probe.BinaryOnPath("colima"),
		step.RunCommands(step.Command("brew", "install", "colima", "docker"))).
		WithVerify(probe.BinaryOnPath("colima")).
		WithCriticality(criticality(StageColima, step.Recoverable)).
		WithRemedy("Run brew install colima docker and inspect the output."))

	vmProbe := probe.ServiceRunning(query, "colima vm running",
		step.Command("colima", "status"))
	steps = append(steps, step.New(
		step.MustNewStepID(StageColimaVM), "Colima virtual machine",
		vmProbe,
		step.RunCommands(step.Command("colima", "start",
			"--cpu", strconv.Itoa(cfg.Colima.CPU),
			"--memory", strconv.Itoa(cfg.Colima.Memory),
			"--disk", strconv.Itoa(cfg.Colima.Disk)))).
		WithVerify(vmProbe).
		WithCriticality(criticality(StageColimaVM, step.Recoverable)).
		WithRemedy("Run colima start manually and inspect its output."))

	if cfg.Autostart {
		steps = append(steps, step.New(
			step.MustNewStepID(StageColimaAutostart), "Colima autostart service",
			probe.FileExists(fs, colimaPlist),
			step.RunCommands(step.Command("brew", "services", "start", "colima"))).
			WithCriticality(criticality(StageColimaAutostart, step.Recoverable)).
			WithRemedy("Run brew services start colima."))
	}

	contextProbe := probe.ConfigFlagSet(fs, "~/.docker/config.json", "currentContext").
		WithValue("colima")
	steps = append(steps, step.New(
		step.MustNewStepID(StageDockerContext), "Docker context",
		contextProbe,
		step.RunCommands(step.Command("docker", "context", "use", "colima"))).
		WithVerify(contextProbe).
		WithCriticality(criticality(StageDockerContext, step.Recoverable)).
		WithRemedy("Run docker context use colima."))

	steps = append(steps, step.New(
		step.MustNewStepID(StageDockerEngine), "Docker engine",
		probe.ServiceRunning(query, "docker daemon responding",
			step.Command("docker", "info")),
		step.RetryCommand(step.Command("docker", "info"), 5, 2*time.Second)).
		WithCriticality(criticality(StageDockerEngine, step.Fatal)).
		WithRemedy(dockerEngineRemedy))

	steps = append(steps, step.New(
		step.MustNewStepID(StageOllama), "Ollama",
		probe.BinaryOnPath("ollama"),
		step.RunCommands(
			step.Command("brew", "install", "ollama"),
			step.Command("brew", "services", "start", "ollama"))).
		WithVerify(probe.BinaryOnPath("ollama")).
		WithCriticality(criticality(StageOllama, step.Recoverable)).
		WithRemedy("Run brew install ollama, then brew services start ollama."))

	modelProbe := probe.InInventory(query, "model "+cfg.Model+" pulled",
		step.Command("ollama", "list"), cfg.Model)
	steps = append(steps, step.New(
		step.MustNewStepID(StageModel), "Model "+cfg.Model,
		modelProbe,
		step.RunCommands(step.Command("ollama", "pull", cfg.Model))).
		WithVerify(modelProbe).
		WithCriticality(criticality(StageModel, step.Recoverable)).
		WithRemedy("Run ollama pull "+cfg.Model+" once the Ollama service is up."))

	webuiProbe := probe.ContainerRunning(query, cfg.WebUI.Name)
	steps = append(steps, step.New(
		step.MustNewStepID(StageOpenWebUI), "Open WebUI",
		webuiProbe,
		step.RunCommands(
			step.BestEffort("docker", "rm", "-f", cfg.WebUI.Name),
			step.Command("docker", "run", "-d",
				"-p", fmt.Sprintf("%d:8080", cfg.WebUI.Port),
				"--add-host=host.docker.internal:host-gateway",
				"-e", "OLLAMA_BASE_URL=http://host.docker.internal:11434",
				"-v", cfg.WebUI.Volume,
				"--name", cfg.WebUI.Name,
				"--restart", "always",
				cfg.WebUI.Image))).
		WithVerify(webuiProbe).
		WithCriticality(criticality(StageOpenWebUI, step.Recoverable)).
		WithRemedy("Inspect the container logs: docker logs "+cfg.WebUI.Name))

	for _, custom := range cfg.Custom {
		steps = append(steps, step.New(
			custom.ID, custom.Title,
			probe.FileExists(fs, custom.Creates),
			step.RunCommands(step.Command("sh", "-c", custom.Command))).
			WithCriticality(custom.Criticality))
	}

	return steps
}
