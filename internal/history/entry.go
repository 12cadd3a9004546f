// Package history persists run reports. The pipeline itself never
// writes anything; the application hands finished reports to this store
// so past provisioning runs can be inspected later.
package history

import (
	"time"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
)

// Entry is a persisted run report.
type Entry struct {
	ID          string        `json:"id"`
	Mode        string        `json:"mode"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Interrupted bool          `json:"interrupted,omitempty"`
	ExitCode    int           `json:"exit_code"`
	Steps       []StepRecord  `json:"steps"`
}

// StepRecord is one step result inside an Entry.
type StepRecord struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Outcome     string        `json:"outcome"`
	Criticality string        `json:"criticality"`
	Detail      string        `json:"detail,omitempty"`
	Commands    []string      `json:"commands,omitempty"`
	Remedy      string        `json:"remedy,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// NewEntry converts a finished run report into its persisted form.
func NewEntry(report pipeline.RunReport) Entry {
	steps := make([]StepRecord, 0, report.Len())
	for _, result := range report.Results() {
		record := StepRecord{
			ID:          result.StepID().String(),
			Title:       result.Title(),
			Outcome:     result.Outcome().String(),
			Criticality: result.Criticality().String(),
			Detail:      result.Detail(),
			Remedy:      result.Remedy(),
			Duration:    result.Duration(),
		}
		for _, spec := range result.Commands() {
			record.Commands = append(record.Commands, spec.String())
		}
		if err := result.Error(); err != nil {
			record.Error = err.Error()
		}
		steps = append(steps, record)
	}

	return Entry{
		ID:          report.ID(),
		Mode:        report.Mode().String(),
		StartedAt:   report.StartedAt(),
		Duration:    report.Duration(),
		Interrupted: report.Interrupted(),
		ExitCode:    report.ExitCode(),
		Steps:       steps,
	}
}

// Summary tallies the entry's step outcomes.
func (e Entry) Summary() pipeline.Summary {
	var summary pipeline.Summary
	for _, record := range e.Steps {
		switch record.Outcome {
		case string(step.OutcomeAlreadySatisfied):
			summary.AlreadySatisfied++
		case string(step.OutcomeApplied):
			summary.Applied++
		case string(step.OutcomeSimulated):
			summary.Simulated++
		case string(step.OutcomeFailed):
			summary.Failed++
		}
	}
	return summary
}
