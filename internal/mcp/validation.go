package mcp

import (
	"fmt"

	"github.com/felixgeelhaar/airstrip/internal/validation"
)

// Tool inputs arrive from a model over the wire, not from an operator's
// keyboard, so every path is screened before it reaches the loader.
func checkConfigPath(path string) error {
	if err := validation.ValidateConfigPath(path); err != nil {
		return fmt.Errorf("invalid config_path: %w", err)
	}
	return nil
}

// ValidatePlanInput validates PlanInput fields.
func ValidatePlanInput(in *PlanInput) error {
	return checkConfigPath(in.ConfigPath)
}

// ValidateUpInput validates UpInput fields. Confirm and DryRun are plain
// booleans; only the path needs screening.
func ValidateUpInput(in *UpInput) error {
	return checkConfigPath(in.ConfigPath)
}

// ValidateDoctorInput validates DoctorInput fields.
func ValidateDoctorInput(in *DoctorInput) error {
	return checkConfigPath(in.ConfigPath)
}

// ValidateStatusInput validates StatusInput fields.
func ValidateStatusInput(in *StatusInput) error {
	return checkConfigPath(in.ConfigPath)
}
