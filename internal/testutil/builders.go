package testutil

import (
	"fmt"
	"strings"
)

// CustomStep is one entry of a manifest's steps list.
type CustomStep struct {
	Name        string
	Title       string
	Command     string
	Creates     string
	Criticality string
}

// ManifestBuilder assembles airstrip.yaml documents for tests. Only the
// sections that were set are emitted, so a builder with no calls yields
// an empty manifest and the loader's defaults apply.
type ManifestBuilder struct {
	model       string
	cpu         int
	memory      int
	disk        int
	webuiName   string
	webuiImage  string
	webuiPort   int
	webuiVolume string
	endpoint    string
	autostart   *bool
	overrides   []overrideEntry
	steps       []CustomStep
}

// overrideEntry keeps criticality overrides in insertion order so the
// rendered YAML is deterministic.
type overrideEntry struct {
	stage string
	level string
}

// NewManifestBuilder creates a new manifest builder.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{}
}

// WithModel sets the model to pull.
func (b *ManifestBuilder) WithModel(model string) *ManifestBuilder {
	b.model = model
	return b
}

// WithColima sets the VM sizing.
func (b *ManifestBuilder) WithColima(cpu, memory, disk int) *ManifestBuilder {
	b.cpu = cpu
	b.memory = memory
	b.disk = disk
	return b
}

// WithWebUIName sets the container name.
func (b *ManifestBuilder) WithWebUIName(name string) *ManifestBuilder {
	b.webuiName = name
	return b
}

// WithWebUIImage sets the container image.
func (b *ManifestBuilder) WithWebUIImage(image string) *ManifestBuilder {
	b.webuiImage = image
	return b
}

// WithWebUIPort sets the published host port.
func (b *ManifestBuilder) WithWebUIPort(port int) *ManifestBuilder {
	b.webuiPort = port
	return b
}

// WithWebUIVolume sets the container volume mount.
func (b *ManifestBuilder) WithWebUIVolume(volume string) *ManifestBuilder {
	b.webuiVolume = volume
	return b
}

// WithOllamaEndpoint sets the Ollama API base URL.
func (b *ManifestBuilder) WithOllamaEndpoint(endpoint string) *ManifestBuilder {
	b.endpoint = endpoint
	return b
}

// WithAutostart sets the autostart toggle explicitly.
func (b *ManifestBuilder) WithAutostart(enabled bool) *ManifestBuilder {
	b.autostart = &enabled
	return b
}

// WithCriticality overrides the criticality of a built-in stage.
func (b *ManifestBuilder) WithCriticality(stage, level string) *ManifestBuilder {
	b.overrides = append(b.overrides, overrideEntry{stage: stage, level: level})
	return b
}

// WithStep appends a custom step.
func (b *ManifestBuilder) WithStep(s CustomStep) *ManifestBuilder {
	b.steps = append(b.steps, s)
	return b
}

// Build renders the manifest as YAML.
func (b *ManifestBuilder) Build() string {
	var sb strings.Builder

	if b.model != "" {
		fmt.Fprintf(&sb, "model: %s\n", b.model)
	}
	if b.cpu > 0 || b.memory > 0 || b.disk > 0 {
		sb.WriteString("colima:\n")
		if b.cpu > 0 {
			fmt.Fprintf(&sb, "  cpu: %d\n", b.cpu)
		}
		if b.memory > 0 {
			fmt.Fprintf(&sb, "  memory: %d\n", b.memory)
		}
		if b.disk > 0 {
			fmt.Fprintf(&sb, "  disk: %d\n", b.disk)
		}
	}
	if b.webuiName != "" || b.webuiImage != "" || b.webuiPort > 0 || b.webuiVolume != "" {
		sb.WriteString("webui:\n")
		if b.webuiName != "" {
			fmt.Fprintf(&sb, "  name: %s\n", b.webuiName)
		}
		if b.webuiImage != "" {
			fmt.Fprintf(&sb, "  image: %s\n", b.webuiImage)
		}
		if b.webuiPort > 0 {
			fmt.Fprintf(&sb, "  port: %d\n", b.webuiPort)
		}
		if b.webuiVolume != "" {
			fmt.Fprintf(&sb, "  volume: %s\n", b.webuiVolume)
		}
	}
	if b.endpoint != "" {
		sb.WriteString("ollama:\n")
		fmt.Fprintf(&sb, "  endpoint: %s\n", b.endpoint)
	}
	if b.autostart != nil {
		fmt.Fprintf(&sb, "autostart: %t\n", *b.autostart)
	}
	if len(b.overrides) > 0 {
		sb.WriteString("criticality:\n")
		for _, o := range b.overrides {
			fmt.Fprintf(&sb, "  %s: %s\n", o.stage, o.level)
		}
	}
	if len(b.steps) > 0 {
		sb.WriteString("steps:\n")
		for _, s := range b.steps {
			fmt.Fprintf(&sb, "  - name: %s\n", s.Name)
			if s.Title != "" {
				fmt.Fprintf(&sb, "    title: %s\n", s.Title)
			}
			fmt.Fprintf(&sb, "    command: %s\n", s.Command)
			fmt.Fprintf(&sb, "    creates: %s\n", s.Creates)
			if s.Criticality != "" {
				fmt.Fprintf(&sb, "    criticality: %s\n", s.Criticality)
			}
		}
	}

	return sb.String()
}
