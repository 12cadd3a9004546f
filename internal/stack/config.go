// Package stack turns configuration into the ordered provisioning steps
// for the local AI workstation: Homebrew, the Colima container runtime,
// Ollama with a pulled model, and the Open WebUI container.
package stack

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/validation"
)

// configFileName is the manifest the loader searches for.
const configFileName = "airstrip.yaml"

// Config is the resolved stack configuration. Every field has a usable
// default: running without a manifest provisions the standard stack.
type Config struct {
	Model     string
	Colima    ColimaConfig
	WebUI     WebUIConfig
	Ollama    OllamaConfig
	Autostart bool
	// Overrides maps built-in stage ids to a criticality replacing the
	// stage's default.
	Overrides map[string]step.Criticality
	Custom    []CustomStep
}

// ColimaConfig sizes the Colima virtual machine.
type ColimaConfig struct {
	CPU    int
	Memory int
	Disk   int
}

// WebUIConfig describes the Open WebUI container.
type WebUIConfig struct {
	Name   string
	Image  string
	Port   int
	Volume string
}

// OllamaConfig locates the Ollama API.
type OllamaConfig struct {
	Endpoint string
}

// CustomStep is a user-defined provisioning step appended after the
// built-in stack: a shell command that creates a file, with the file's
// existence as the probe.
type CustomStep struct {
	ID          step.StepID
	Title       string
	Command     string
	Creates     string
	Criticality step.Criticality
}

// DefaultConfig returns the stack airstrip provisions out of the box.
func DefaultConfig() *Config {
	return &Config{
		Model: "llama3.2",
		Colima: ColimaConfig{
			CPU:    4,
			Memory: 8,
			Disk:   60,
		},
		WebUI: WebUIConfig{
			Name:   "open-webui",
			Image:  "ghcr.io/open-webui/open-webui:main",
			Port:   3000,
			Volume: "open-webui:/app/backend/data",
		},
		Ollama: OllamaConfig{
			Endpoint: "http://127.0.0.1:11434",
		},
		Autostart: true,
		Overrides: map[string]step.Criticality{},
	}
}

// DefaultConfigPath returns the XDG location of the manifest.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "airstrip", configFileName)
}

// configYAML is the YAML representation for unmarshaling.
type configYAML struct {
	Model  string `yaml:"model,omitempty"`
	Colima struct {
		CPU    int `yaml:"cpu,omitempty"`
		Memory int `yaml:"memory,omitempty"`
		Disk   int `yaml:"disk,omitempty"`
	} `yaml:"colima,omitempty"`
	WebUI struct {
		Name   string `yaml:"name,omitempty"`
		Image  string `yaml:"image,omitempty"`
		Port   int    `yaml:"port,omitempty"`
		Volume string `yaml:"volume,omitempty"`
	} `yaml:"webui,omitempty"`
	Ollama struct {
		Endpoint string `yaml:"endpoint,omitempty"`
	} `yaml:"ollama,omitempty"`
	Autostart   *bool             `yaml:"autostart,omitempty"`
	Criticality map[string]string `yaml:"criticality,omitempty"`
	Steps       []customStepYAML  `yaml:"steps,omitempty"`
}

type customStepYAML struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title,omitempty"`
	Command     string `yaml:"command"`
	Creates     string `yaml:"creates"`
	Criticality string `yaml:"criticality,omitempty"`
}

// ParseConfig parses a Config from YAML bytes, overlaying the defaults.
func ParseConfig(data []byte) (*Config, error) {
	var raw configYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	cfg := DefaultConfig()

	if raw.Model != "" {
		if err := validation.ValidateModelName(raw.Model); err != nil {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid model name %q", raw.Model)).
				WithUnderlying(err).
				WithSuggestion(`Model names look like "llama3.2" or "qwen2.5-coder:7b".`)
		}
		cfg.Model = raw.Model
	}
	if err := overlayColima(cfg, raw); err != nil {
		return nil, err
	}
	if err := overlayWebUI(cfg, raw); err != nil {
		return nil, err
	}
	if raw.Ollama.Endpoint != "" {
		cfg.Ollama.Endpoint = raw.Ollama.Endpoint
	}
	if raw.Autostart != nil {
		cfg.Autostart = *raw.Autostart
	}

	for id, value := range raw.Criticality {
		if !isStageID(id) {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("criticality override for unknown step %q", id)).
				WithSuggestion("Valid step ids: " + strings.Join(StageIDs(), ", ") + ".")
		}
		criticality, err := parseCriticality(value)
		if err != nil {
			return nil, err
		}
		cfg.Overrides[id] = criticality
	}

	custom, err := parseCustomSteps(raw.Steps)
	if err != nil {
		return nil, err
	}
	cfg.Custom = custom

	return cfg, nil
}

func overlayColima(cfg *Config, raw configYAML) error {
	for _, field := range []struct {
		name  string
		value int
		dst   *int
	}{
		{"colima.cpu", raw.Colima.CPU, &cfg.Colima.CPU},
		{"colima.memory", raw.Colima.Memory, &cfg.Colima.Memory},
		{"colima.disk", raw.Colima.Disk, &cfg.Colima.Disk},
	} {
		if field.value < 0 {
			return step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("%s must be positive, got %d", field.name, field.value)).
				WithSuggestion("Leave the field out to use the default VM size.")
		}
		if field.value > 0 {
			*field.dst = field.value
		}
	}
	return nil
}

func overlayWebUI(cfg *Config, raw configYAML) error {
	if raw.WebUI.Name != "" {
		if err := validation.ValidateDockerName(raw.WebUI.Name); err != nil {
			return step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid webui.name %q", raw.WebUI.Name)).
				WithUnderlying(err).
				WithSuggestion("Container names are letters, digits, dots, underscores, and hyphens.")
		}
		cfg.WebUI.Name = raw.WebUI.Name
	}
	if raw.WebUI.Image != "" {
		if err := validation.ValidateImageRef(raw.WebUI.Image); err != nil {
			return step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid webui.image %q", raw.WebUI.Image)).
				WithUnderlying(err).
				WithSuggestion(`Image references look like "ghcr.io/open-webui/open-webui:main".`)
		}
		cfg.WebUI.Image = raw.WebUI.Image
	}
	if raw.WebUI.Port != 0 {
		if raw.WebUI.Port < 1 || raw.WebUI.Port > 65535 {
			return step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("webui.port must be between 1 and 65535, got %d", raw.WebUI.Port)).
				WithSuggestion("Pick a free local port, e.g. 3000.")
		}
		cfg.WebUI.Port = raw.WebUI.Port
	}
	if raw.WebUI.Volume != "" {
		if err := validation.ValidateVolumeSpec(raw.WebUI.Volume); err != nil {
			return step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid webui.volume %q", raw.WebUI.Volume)).
				WithUnderlying(err).
				WithSuggestion(`Volumes look like "open-webui:/app/backend/data".`)
		}
		cfg.WebUI.Volume = raw.WebUI.Volume
	}
	return nil
}

func parseCustomSteps(raw []customStepYAML) ([]CustomStep, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	titler := cases.Title(language.English)
	seen := make(map[string]bool, len(raw))
	custom := make([]CustomStep, 0, len(raw))

	for _, entry := range raw {
		id, err := step.NewStepID(entry.Name)
		if err != nil {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid step name %q", entry.Name)).
				WithUnderlying(err).
				WithSuggestion("Step names are lowercase letters, digits, and hyphens.")
		}
		if isStageID(id.String()) {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("step name %q collides with a built-in stage", entry.Name)).
				WithSuggestion("Rename the custom step; built-in stages are configured through their own fields.")
		}
		if seen[id.String()] {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("duplicate step name %q", entry.Name))
		}
		seen[id.String()] = true

		if strings.TrimSpace(entry.Command) == "" {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("step %q has no command", entry.Name)).
				WithSuggestion("Set command to the shell line the step should run.")
		}
		if strings.TrimSpace(entry.Creates) == "" {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("step %q has no creates path", entry.Name)).
				WithSuggestion("Set creates to the file the command produces; its existence makes the step satisfied.")
		}
		if err := validation.ValidatePath(entry.Creates); err != nil {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("step %q has an invalid creates path", entry.Name)).
				WithUnderlying(err).
				WithSuggestion("Use a plain file path without traversal sequences.")
		}

		criticality := step.Recoverable
		if entry.Criticality != "" {
			criticality, err = parseCriticality(entry.Criticality)
			if err != nil {
				return nil, err
			}
		}

		title := entry.Title
		if title == "" {
			title = titler.String(strings.ReplaceAll(id.String(), "-", " "))
		}

		custom = append(custom, CustomStep{
			ID:          id,
			Title:       title,
			Command:     entry.Command,
			Creates:     entry.Creates,
			Criticality: criticality,
		})
	}
	return custom, nil
}

func parseCriticality(value string) (step.Criticality, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fatal":
		return step.Fatal, nil
	case "recoverable":
		return step.Recoverable, nil
	default:
		return "", step.NewStepError(step.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown criticality %q", value)).
			WithSuggestion(`Use "fatal" or "recoverable".`)
	}
}

// Loader loads stack configuration from the filesystem.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load resolves and parses the configuration. An explicit path must
// exist; with an empty path the loader searches the working directory,
// then the XDG config dir, and falls back to the defaults when no
// manifest is found.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		expanded := ports.ExpandPath(path)
		if !l.fs.Exists(expanded) {
			return nil, step.NewStepError(step.ErrCodeConfigInvalid,
				fmt.Sprintf("configuration file not found: %s", path)).
				WithSuggestion("Create the file, or drop --config to provision the default stack.")
		}
		return l.load(expanded)
	}

	for _, candidate := range []string{configFileName, DefaultConfigPath()} {
		if l.fs.Exists(candidate) {
			return l.load(candidate)
		}
	}
	return DefaultConfig(), nil
}

func (l *Loader) load(path string) (*Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		var stepErr *step.StepError
		if errors.As(err, &stepErr) {
			return nil, err
		}
		return nil, step.NewStepError(step.ErrCodeConfigInvalid,
			fmt.Sprintf("cannot parse %s", path)).
			WithUnderlying(err).
			WithSuggestion("Check the YAML syntax of the manifest.")
	}
	return cfg, nil
}
