// Package templates provides file templates for airstrip configuration
// bootstrapping.
package templates

import (
	"bytes"
	"text/template"
)

// ConfigData fills the starter manifest template. Values come from the
// stack defaults so a freshly written manifest changes nothing.
type ConfigData struct {
	Model       string
	CPU         int
	Memory      int
	Disk        int
	WebUIName   string
	WebUIImage  string
	WebUIPort   int
	WebUIVolume string
	Autostart   bool
}

// configTemplateStr is the starter airstrip.yaml, with every field set
// to its default and the optional sections left commented out.
const configTemplateStr = `# airstrip.yaml - local AI stack manifest.
#
# Every field is optional. 'airstrip up' without this file provisions
# the same stack; edit only what you want to change.

# Ollama model to pull and keep available.
model: {{.Model}}

# Colima VM backing the Docker engine.
colima:
  cpu: {{.CPU}}
  memory: {{.Memory}}
  disk: {{.Disk}}

# Open WebUI container.
webui:
  name: {{.WebUIName}}
  image: {{.WebUIImage}}
  port: {{.WebUIPort}}
  volume: {{.WebUIVolume}}

# Bring the VM back up automatically after a reboot.
autostart: {{.Autostart}}

# Override how a built-in step's failure is handled.
# criticality:
#   model: fatal

# Extra steps appended after the built-in stack. A step runs its
# command only while the creates path is missing.
# steps:
#   - name: jupyter
#     title: JupyterLab
#     command: pip3 install --user jupyterlab
#     creates: ~/.local/bin/jupyter
`

// GenerateConfig renders the starter manifest from the template.
func GenerateConfig(data ConfigData) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
