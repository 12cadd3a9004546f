package main

import (
	"context"
	"io"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/app"
	mcptools "github.com/felixgeelhaar/airstrip/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start a Model Context Protocol (MCP) server for AI agent integration.

The MCP server exposes airstrip to AI agents via the Model Context
Protocol, letting an agent inspect and provision the local AI stack.

Available tools:
  - airstrip_plan    Show which steps a run would apply
  - airstrip_up      Provision the stack (requires confirm=true)
  - airstrip_doctor  Check stack health
  - airstrip_status  Get version, config, and last-run status

Examples:
  airstrip mcp                   # Start stdio MCP server
  airstrip mcp --http :8080      # Start HTTP MCP server
  airstrip mcp -c ai.yaml        # Use a specific config file`,
	RunE: runMCP,
}

var mcpHTTP string

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpHTTP, "http", "", "Start HTTP server on address (e.g., :8080)")
}

func runMCP(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// The stdio transport owns stdout, so the app's transcript has to
	// stay off it; tool output travels as MCP responses instead.
	airstrip := app.New(io.Discard).WithVerbose(verbose)

	// Create MCP server
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "airstrip",
		Version: version,
	})

	// Register all tools with version info
	versionInfo := mcptools.VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
	}
	mcptools.RegisterAll(srv, airstrip, cfgFile, versionInfo)

	// Serve based on transport
	if mcpHTTP != "" {
		return mcp.ServeHTTP(ctx, srv, mcpHTTP)
	}

	// Default to stdio
	return mcp.ServeStdio(ctx, srv)
}
