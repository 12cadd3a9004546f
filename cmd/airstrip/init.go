package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/stack"
	"github.com/felixgeelhaar/airstrip/internal/templates"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter airstrip.yaml",
	Long: `Init writes a commented starter manifest with every field set to
its default.

The manifest is optional: 'airstrip up' without one provisions the
default stack. Write one when you want to pin a different model,
resize the VM, or append custom steps.

Examples:
  airstrip init           # Write ./airstrip.yaml
  airstrip init --force   # Overwrite an existing manifest`,
	RunE: runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing airstrip.yaml")

	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// Check if a manifest already exists
	if _, err := os.Stat("airstrip.yaml"); err == nil && !initForce {
		fmt.Println("airstrip.yaml already exists.")
		fmt.Println("Use 'airstrip plan' to review it, or --force to overwrite.")
		return nil
	}

	defaults := stack.DefaultConfig()
	content, err := templates.GenerateConfig(templates.ConfigData{
		Model:       defaults.Model,
		CPU:         defaults.Colima.CPU,
		Memory:      defaults.Colima.Memory,
		Disk:        defaults.Colima.Disk,
		WebUIName:   defaults.WebUI.Name,
		WebUIImage:  defaults.WebUI.Image,
		WebUIPort:   defaults.WebUI.Port,
		WebUIVolume: defaults.WebUI.Volume,
		Autostart:   defaults.Autostart,
	})
	if err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}

	if err := os.WriteFile("airstrip.yaml", []byte(content), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	fmt.Println("Configuration created: airstrip.yaml")
	fmt.Println("\nNext steps:")
	fmt.Println("  airstrip plan   - Review what a run would do")
	fmt.Println("  airstrip up     - Provision the stack")

	return nil
}
