package app

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/tui/ui"
)

// transcript prints one line per finished step, in execution order.
type transcript struct {
	out    io.Writer
	styles ui.Styles
}

func newTranscript(out io.Writer, styles ui.Styles) *transcript {
	return &transcript{out: out, styles: styles}
}

// StepStarted is a no-op; the transcript reports completions only.
func (t *transcript) StepStarted(step.Step) {}

// StepCompleted prints the step's outcome line, plus the commands a
// simulated step would have run or the failure detail of a failed one.
func (t *transcript) StepCompleted(result pipeline.StepResult) {
	marker, note := t.format(result)
	line := fmt.Sprintf("  %s %s %s", marker, result.Title(), t.styles.Detail.Render(note))
	_, _ = fmt.Fprintln(t.out, line)

	switch result.Outcome() {
	case step.OutcomeSimulated:
		for _, spec := range result.Commands() {
			_, _ = fmt.Fprintf(t.out, "      %s\n", t.styles.Detail.Render("$ "+spec.String()))
		}
	case step.OutcomeFailed:
		if err := result.Error(); err != nil {
			_, _ = fmt.Fprintf(t.out, "      %s\n", t.styles.Error.Render(err.Error()))
		}
		if result.Remedy() != "" {
			_, _ = fmt.Fprintf(t.out, "      %s\n", t.styles.Help.Render(result.Remedy()))
		}
	}
}

// format maps an outcome to its transcript marker and note.
func (t *transcript) format(result pipeline.StepResult) (string, string) {
	switch result.Outcome() {
	case step.OutcomeAlreadySatisfied:
		return t.styles.Success.Render("✓"), "(already satisfied)"
	case step.OutcomeApplied:
		return t.styles.Success.Render("✓"), "(applied)"
	case step.OutcomeSimulated:
		return t.styles.DryRun.Render("»"), "(would apply)"
	case step.OutcomeFailed:
		if result.FatalFailure() {
			return t.styles.Error.Render("✗"), "(failed)"
		}
		return t.styles.Warning.Render("!"), "(failed, continuing)"
	}
	return "?", ""
}
