package app

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/airstrip/internal/doctor"
	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/stack"
)

// printf is a helper that writes to the output writer, ignoring errors.
func (a *Airstrip) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// printRunHeader prints the transcript heading.
func (a *Airstrip) printRunHeader(mode ports.Mode) {
	title := "Provisioning Local AI Stack"
	if mode.DryRun() {
		title += " (dry-run)"
	}
	a.printf("\n%s\n", title)
	a.printf("%s\n\n", strings.Repeat("=", len(title)))
}

// PrintPlan outputs a human-readable plan summary.
func (a *Airstrip) PrintPlan(preview *Preview) {
	a.printf("\nAirstrip Plan\n")
	a.printf("=============\n\n")

	if !preview.HasChanges() {
		a.printf("No changes needed. Your AI stack is in place.\n")
		return
	}

	a.printf("Steps: %d total, %d to apply, %d satisfied\n\n",
		len(preview.Steps), preview.Pending(), len(preview.Steps)-preview.Pending())

	for _, s := range preview.Steps {
		status := "✓"
		if !s.Satisfied {
			status = "+"
		}
		a.printf("  %s %s\n", status, s.Title)

		if !s.Satisfied {
			for _, spec := range s.Commands {
				a.printf("      $ %s\n", spec.String())
			}
		}
	}

	a.printf("\nRun 'airstrip up' to execute this plan.\n")
}

// PrintSummary outputs the run totals and any abort note.
func (a *Airstrip) PrintSummary(report pipeline.RunReport) {
	summary := report.Summary()

	a.printf("\nSummary: %d already satisfied, %d applied, %d simulated, %d failed\n",
		summary.AlreadySatisfied, summary.Applied, summary.Simulated, summary.Failed)

	if report.Interrupted() {
		a.printf("Run interrupted before completion.\n")
	}

	if res, fatal := report.FatalFailure(); fatal {
		a.printf("Aborted: %s failed.\n", res.Title())
		if res.Remedy() != "" {
			a.printf("%s\n", res.Remedy())
		}
		return
	}

	if report.Mode().DryRun() && summary.Simulated > 0 {
		a.printf("\nRun 'airstrip up' to apply these changes.\n")
	}
}

// PrintEndpoints outputs the stack's service URLs.
func (a *Airstrip) PrintEndpoints(endpoints stack.Endpoints) {
	a.printf("\nEndpoints\n")
	a.printf("=========\n\n")
	a.printf("  Open WebUI: %s\n", endpoints.WebUI)
	a.printf("  Ollama API: %s\n", endpoints.Ollama)
}

// PrintDoctorReport outputs doctor check results.
func (a *Airstrip) PrintDoctorReport(report doctor.Report) {
	a.printf("\nAirstrip Doctor\n")
	a.printf("===============\n\n")

	for _, check := range report.Checks {
		marker := "?"
		switch check.Status {
		case doctor.StatusOK:
			marker = "✓"
		case doctor.StatusWarn:
			marker = "!"
		case doctor.StatusFail:
			marker = "✗"
		}

		a.printf("  %s %s", marker, check.Name)
		if check.Detail != "" {
			a.printf(": %s", check.Detail)
		}
		a.printf("\n")

		if check.Suggestion != "" && check.Status != doctor.StatusOK {
			a.printf("      %s\n", check.Suggestion)
		}
	}

	if issues := report.Issues(); issues > 0 {
		a.printf("\n%d issue(s) found.\n", issues)
	} else {
		a.printf("\nAll checks passed.\n")
	}

	if report.Healthy() {
		a.PrintEndpoints(report.Endpoints)
	}
}
