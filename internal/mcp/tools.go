// Package mcp provides MCP (Model Context Protocol) server implementation for airstrip.
package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/airstrip/internal/app"
	"github.com/felixgeelhaar/airstrip/internal/history"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/stack"
)

// PlanInput is the input for the airstrip_plan tool.
type PlanInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"description=Path to airstrip.yaml (defaults to the standard search locations)"`
}

// PlanOutput is the output for the airstrip_plan tool.
type PlanOutput struct {
	HasChanges bool        `json:"has_changes"`
	Summary    PlanSummary `json:"summary"`
	Steps      []PlanStep  `json:"steps"`
}

// PlanSummary contains plan statistics.
type PlanSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Satisfied int `json:"satisfied"`
}

// PlanStep represents a single step in the plan.
type PlanStep struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"` // satisfied, pending
	Criticality string   `json:"criticality"`
	Commands    []string `json:"commands,omitempty"`
}

// UpInput is the input for the airstrip_up tool.
type UpInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"description=Path to airstrip.yaml (defaults to the standard search locations)"`
	DryRun     bool   `json:"dry_run,omitempty" jsonschema:"description=Report the commands a run would execute without spawning any process"`
	Confirm    bool   `json:"confirm" jsonschema:"required,description=Must be true to provision the machine (safety confirmation)"`
}

// UpOutput is the output for the airstrip_up tool.
type UpOutput struct {
	Mode        string     `json:"mode"` // live, dry-run
	ExitCode    int        `json:"exit_code"`
	Interrupted bool       `json:"interrupted,omitempty"`
	Results     []UpResult `json:"results,omitempty"`
	Summary     UpSummary  `json:"summary"`
	Endpoints   *Endpoints `json:"endpoints,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// UpResult represents the result of one provisioning step.
type UpResult struct {
	StepID   string   `json:"step_id"`
	Title    string   `json:"title"`
	Outcome  string   `json:"outcome"` // already-satisfied, applied, simulated, failed
	Detail   string   `json:"detail,omitempty"`
	Commands []string `json:"commands,omitempty"`
	Error    string   `json:"error,omitempty"`
	Remedy   string   `json:"remedy,omitempty"`
}

// UpSummary tallies step outcomes for a run.
type UpSummary struct {
	AlreadySatisfied int `json:"already_satisfied"`
	Applied          int `json:"applied"`
	Simulated        int `json:"simulated"`
	Failed           int `json:"failed"`
}

// Endpoints are the service URLs of a provisioned stack.
type Endpoints struct {
	WebUI  string `json:"webui"`
	Ollama string `json:"ollama"`
}

// DoctorInput is the input for the airstrip_doctor tool.
type DoctorInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"description=Path to airstrip.yaml (defaults to the standard search locations)"`
}

// DoctorOutput is the output for the airstrip_doctor tool.
type DoctorOutput struct {
	Healthy    bool          `json:"healthy"`
	IssueCount int           `json:"issue_count"`
	Checks     []DoctorCheck `json:"checks"`
	Endpoints  Endpoints     `json:"endpoints"`
	Duration   string        `json:"duration"`
}

// DoctorCheck represents a single health check result.
type DoctorCheck struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // ok, warn, fail
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// StatusInput is the input for the airstrip_status tool.
type StatusInput struct {
	ConfigPath string `json:"config_path,omitempty" jsonschema:"description=Path to airstrip.yaml (defaults to the standard search locations)"`
}

// StatusOutput is the output for the airstrip_status tool.
type StatusOutput struct {
	Version      string     `json:"version"`
	Commit       string     `json:"commit"`
	BuildDate    string     `json:"build_date"`
	ConfigPath   string     `json:"config_path"`
	ConfigValid  bool       `json:"config_valid"`
	Model        string     `json:"model,omitempty"`
	StepCount    int        `json:"step_count"`
	PendingSteps int        `json:"pending_steps"`
	LastRun      *LastRun   `json:"last_run,omitempty"`
	Endpoints    *Endpoints `json:"endpoints,omitempty"`
}

// LastRun summarizes the most recent recorded run.
type LastRun struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	StartedAt string `json:"started_at"`
	ExitCode  int    `json:"exit_code"`
	Applied   int    `json:"applied"`
	Failed    int    `json:"failed"`
}

// VersionInfo contains version metadata for the MCP server.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// RegisterAll registers all airstrip tools on the MCP server.
func RegisterAll(srv *mcp.Server, airstrip *app.Airstrip, defaultConfig string, versionInfo VersionInfo) {
	registerPlanTool(srv, airstrip, defaultConfig)
	registerUpTool(srv, airstrip, defaultConfig)
	registerDoctorTool(srv, airstrip, defaultConfig)
	registerStatusTool(srv, airstrip, defaultConfig, versionInfo)
}

func registerPlanTool(srv *mcp.Server, airstrip *app.Airstrip, defaultConfig string) {
	srv.Tool("airstrip_plan").
		Description("Show which provisioning steps airstrip would run. Probes the machine without changing anything.").
		ReadOnly().
		Handler(func(ctx context.Context, in PlanInput) (*PlanOutput, error) {
			if err := ValidatePlanInput(&in); err != nil {
				return nil, err
			}

			configPath := in.ConfigPath
			if configPath == "" {
				configPath = defaultConfig
			}

			preview, err := airstrip.Plan(ctx, configPath)
			if err != nil {
				return nil, err
			}

			output := &PlanOutput{
				HasChanges: preview.HasChanges(),
				Summary: PlanSummary{
					Total:     len(preview.Steps),
					Pending:   preview.Pending(),
					Satisfied: len(preview.Steps) - preview.Pending(),
				},
				Steps: make([]PlanStep, 0, len(preview.Steps)),
			}

			for _, s := range preview.Steps {
				planStep := PlanStep{
					ID:          s.ID,
					Title:       s.Title,
					Status:      "satisfied",
					Criticality: s.Criticality.String(),
				}
				if !s.Satisfied {
					planStep.Status = "pending"
					for _, spec := range s.Commands {
						planStep.Commands = append(planStep.Commands, spec.String())
					}
				}
				output.Steps = append(output.Steps, planStep)
			}

			return output, nil
		})
}

func registerUpTool(srv *mcp.Server, airstrip *app.Airstrip, defaultConfig string) {
	srv.Tool("airstrip_up").
		Description("Provision the local AI stack. REQUIRES confirm=true for live runs; dry_run=true previews without it.").
		Destructive().
		Handler(func(ctx context.Context, in UpInput) (*UpOutput, error) {
			if err := ValidateUpInput(&in); err != nil {
				return nil, err
			}

			if !in.Confirm && !in.DryRun {
				return &UpOutput{
					Message: "Provisioning changes this machine. Re-run with confirm=true to proceed, or dry_run=true to preview.",
				}, nil
			}

			configPath := in.ConfigPath
			if configPath == "" {
				configPath = defaultConfig
			}

			mode := ports.ModeLive
			if in.DryRun {
				mode = ports.ModeDryRun
			}

			report, err := airstrip.Up(ctx, app.UpOptions{
				ConfigPath: configPath,
				Mode:       mode,
			})
			if err != nil {
				return nil, err
			}

			summary := report.Summary()
			output := &UpOutput{
				Mode:        report.Mode().String(),
				ExitCode:    report.ExitCode(),
				Interrupted: report.Interrupted(),
				Results:     make([]UpResult, 0, report.Len()),
				Summary: UpSummary{
					AlreadySatisfied: summary.AlreadySatisfied,
					Applied:          summary.Applied,
					Simulated:        summary.Simulated,
					Failed:           summary.Failed,
				},
			}

			for _, result := range report.Results() {
				upResult := UpResult{
					StepID:  result.StepID().String(),
					Title:   result.Title(),
					Outcome: result.Outcome().String(),
					Detail:  result.Detail(),
					Remedy:  result.Remedy(),
				}
				for _, spec := range result.Commands() {
					upResult.Commands = append(upResult.Commands, spec.String())
				}
				if resultErr := result.Error(); resultErr != nil {
					upResult.Error = resultErr.Error()
				}
				output.Results = append(output.Results, upResult)
			}

			if fatal, aborted := report.FatalFailure(); aborted {
				output.Message = fatal.Title() + " failed; the run was aborted."
			}

			// Endpoints are only meaningful once a live run got to the end.
			if mode == ports.ModeLive && !report.Interrupted() && output.Message == "" {
				if cfg, cfgErr := airstrip.LoadConfig(configPath); cfgErr == nil {
					output.Endpoints = endpointsOf(cfg)
				}
			}

			return output, nil
		})
}

func registerDoctorTool(srv *mcp.Server, airstrip *app.Airstrip, defaultConfig string) {
	srv.Tool("airstrip_doctor").
		Description("Check the health of the provisioned AI stack: binaries, VM, docker engine, Ollama, model, and WebUI container.").
		ReadOnly().
		Handler(func(ctx context.Context, in DoctorInput) (*DoctorOutput, error) {
			if err := ValidateDoctorInput(&in); err != nil {
				return nil, err
			}

			configPath := in.ConfigPath
			if configPath == "" {
				configPath = defaultConfig
			}

			started := time.Now()
			report, err := airstrip.Doctor(ctx, configPath)
			if err != nil {
				return nil, err
			}

			output := &DoctorOutput{
				Healthy:    report.Healthy(),
				IssueCount: report.Issues(),
				Checks:     make([]DoctorCheck, 0, len(report.Checks)),
				Endpoints: Endpoints{
					WebUI:  report.Endpoints.WebUI,
					Ollama: report.Endpoints.Ollama,
				},
				Duration: time.Since(started).Round(time.Millisecond).String(),
			}

			for _, check := range report.Checks {
				output.Checks = append(output.Checks, DoctorCheck{
					Name:       check.Name,
					Status:     string(check.Status),
					Detail:     check.Detail,
					Suggestion: check.Suggestion,
				})
			}

			return output, nil
		})
}

func registerStatusTool(srv *mcp.Server, airstrip *app.Airstrip, defaultConfig string, versionInfo VersionInfo) {
	srv.Tool("airstrip_status").
		Description("Get current airstrip status including version info, config validity, pending steps, and the last recorded run.").
		ReadOnly().
		Handler(func(ctx context.Context, in StatusInput) (*StatusOutput, error) {
			if err := ValidateStatusInput(&in); err != nil {
				return nil, err
			}

			configPath := in.ConfigPath
			if configPath == "" {
				configPath = defaultConfig
			}

			output := &StatusOutput{
				Version:    versionInfo.Version,
				Commit:     versionInfo.Commit,
				BuildDate:  versionInfo.BuildDate,
				ConfigPath: configPath,
			}

			cfg, err := airstrip.LoadConfig(configPath)
			if err != nil {
				output.ConfigValid = false
				return output, nil //nolint:nilerr // Intentional: return partial status for a broken config
			}
			output.ConfigValid = true
			output.Model = cfg.Model
			output.Endpoints = endpointsOf(cfg)

			if preview, planErr := airstrip.Plan(ctx, configPath); planErr == nil {
				output.StepCount = len(preview.Steps)
				output.PendingSteps = preview.Pending()
			}

			if entry, runErr := airstrip.LastRun(ctx); runErr == nil {
				entrySummary := entry.Summary()
				output.LastRun = &LastRun{
					ID:        entry.ID,
					Mode:      entry.Mode,
					StartedAt: entry.StartedAt.Format(time.RFC3339),
					ExitCode:  entry.ExitCode,
					Applied:   entrySummary.Applied,
					Failed:    entrySummary.Failed,
				}
			} else if !errors.Is(runErr, history.ErrNoRuns) {
				return nil, runErr
			}

			return output, nil
		})
}

func endpointsOf(cfg *stack.Config) *Endpoints {
	endpoints := cfg.Endpoints()
	return &Endpoints{
		WebUI:  endpoints.WebUI,
		Ollama: endpoints.Ollama,
	}
}
