package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/airstrip/internal/stack"
	"github.com/felixgeelhaar/airstrip/internal/templates"
)

func defaultConfigData() templates.ConfigData {
	defaults := stack.DefaultConfig()
	return templates.ConfigData{
		Model:       defaults.Model,
		CPU:         defaults.Colima.CPU,
		Memory:      defaults.Colima.Memory,
		Disk:        defaults.Colima.Disk,
		WebUIName:   defaults.WebUI.Name,
		WebUIImage:  defaults.WebUI.Image,
		WebUIPort:   defaults.WebUI.Port,
		WebUIVolume: defaults.WebUI.Volume,
		Autostart:   defaults.Autostart,
	}
}

func TestGenerateConfig(t *testing.T) {
	t.Parallel()

	t.Run("renders the default values", func(t *testing.T) {
		t.Parallel()

		content, err := templates.GenerateConfig(defaultConfigData())
		require.NoError(t, err)

		assert.Contains(t, content, "model: llama3.2")
		assert.Contains(t, content, "cpu: 4")
		assert.Contains(t, content, "memory: 8")
		assert.Contains(t, content, "disk: 60")
		assert.Contains(t, content, "image: ghcr.io/open-webui/open-webui:main")
		assert.Contains(t, content, "port: 3000")
		assert.Contains(t, content, "autostart: true")
	})

	t.Run("keeps optional sections commented out", func(t *testing.T) {
		t.Parallel()

		content, err := templates.GenerateConfig(defaultConfigData())
		require.NoError(t, err)

		assert.Contains(t, content, "# criticality:")
		assert.Contains(t, content, "# steps:")
		for _, line := range strings.Split(content, "\n") {
			assert.NotContains(t, line, "{{", "unrendered template action in %q", line)
		}
	})

	t.Run("renders custom values", func(t *testing.T) {
		t.Parallel()

		data := defaultConfigData()
		data.Model = "qwen2.5-coder:7b"
		data.Memory = 16

		content, err := templates.GenerateConfig(data)
		require.NoError(t, err)

		assert.Contains(t, content, "model: qwen2.5-coder:7b")
		assert.Contains(t, content, "memory: 16")
	})
}

func TestGenerateConfig_RoundTripsThroughParser(t *testing.T) {
	t.Parallel()

	content, err := templates.GenerateConfig(defaultConfigData())
	require.NoError(t, err)

	parsed, err := stack.ParseConfig([]byte(content))
	require.NoError(t, err, "the starter manifest must stay parseable")
	assert.Equal(t, stack.DefaultConfig(), parsed, "a freshly written manifest changes nothing")
}
