package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPCmd_IsSubcommandOfRoot(t *testing.T) {
	t.Parallel()

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "mcp" {
			found = true
			break
		}
	}
	assert.True(t, found, "mcp should be a subcommand of root")
}

func TestMCPCmd_HasShort(t *testing.T) {
	t.Parallel()

	assert.Contains(t, mcpCmd.Short, "MCP")
}

func TestMCPCmd_HTTPFlagDefault(t *testing.T) {
	t.Parallel()

	f := mcpCmd.Flags().Lookup("http")
	assert.NotNil(t, f)
	assert.Empty(t, f.DefValue)
}

func TestMCPCmd_ListsAllTools(t *testing.T) {
	t.Parallel()

	for _, tool := range []string{"airstrip_plan", "airstrip_up", "airstrip_doctor", "airstrip_status"} {
		assert.Contains(t, mcpCmd.Long, tool)
	}
}
