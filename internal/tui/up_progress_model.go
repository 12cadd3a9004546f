package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/tui/components"
	"github.com/felixgeelhaar/airstrip/internal/tui/ui"
)

// StepStartMsg is sent when a step starts executing.
type StepStartMsg struct {
	Step step.Step
}

// StepCompleteMsg is sent when a step completes execution.
type StepCompleteMsg struct {
	Result pipeline.StepResult
}

// RunCompleteMsg is sent when the pipeline run has finished.
type RunCompleteMsg struct {
	Report pipeline.RunReport
}

// upProgressModel is the Bubble Tea model for up progress.
type upProgressModel struct {
	options        UpProgressOptions
	spinner        components.Spinner
	progressBar    components.Progress
	styles         ui.Styles
	width          int
	height         int
	dryRun         bool
	stepsTotal     int
	stepsCompleted int
	stepsFailed    int
	currentTitle   string
	completed      []pipeline.StepResult
	report         pipeline.RunReport
	haveReport     bool
	done           bool
	cancelled      bool
}

// newUpProgressModel creates a new up progress model.
func newUpProgressModel(total int, dryRun bool, opts UpProgressOptions) upProgressModel {
	return upProgressModel{
		options:     opts,
		spinner:     components.NewSpinner(),
		progressBar: components.NewProgress().WithWidth(40),
		styles:      ui.DefaultStyles(),
		width:       80,
		height:      24,
		dryRun:      dryRun,
		stepsTotal:  total,
		completed:   make([]pipeline.StepResult, 0, total),
	}
}

// Init initializes the model.
func (m upProgressModel) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), m.spinner.Init())
}

// Update handles messages.
func (m upProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.styles = m.styles.WithWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case StepStartMsg:
		m.currentTitle = msg.Step.Title()
		return m, nil

	case StepCompleteMsg:
		m.completed = append(m.completed, msg.Result)
		m.stepsCompleted++
		if msg.Result.Outcome() == step.OutcomeFailed {
			m.stepsFailed++
		}
		return m, nil

	case RunCompleteMsg:
		m.report = msg.Report
		m.haveReport = true
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the model.
func (m upProgressModel) View() string {
	var b strings.Builder

	// Header
	header := m.styles.Title.Render("Provisioning Local AI Stack")
	if m.dryRun {
		header += " " + m.styles.DryRun.Render("(dry-run)")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.stepsTotal == 0 {
		b.WriteString(m.styles.Help.Render("No steps to run."))
		return b.String()
	}

	// Progress bar
	if !m.options.Quiet {
		progressBar := m.progressBar.SetSteps(m.stepsCompleted, m.stepsTotal)
		b.WriteString(progressBar.View())
		b.WriteString("\n\n")
	}

	// Status line
	statusLine := fmt.Sprintf("Progress: %d/%d steps", m.stepsCompleted, m.stepsTotal)
	if m.stepsFailed > 0 {
		statusLine += fmt.Sprintf(" (%d failed)", m.stepsFailed)
	}
	b.WriteString(m.styles.Help.Render(statusLine))
	b.WriteString("\n\n")

	// Current step (if any)
	if m.currentTitle != "" && !m.done {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Info.Render(m.currentTitle))
		b.WriteString("\n\n")
	}

	// Recent completions (if showing details)
	if m.options.ShowDetails && len(m.completed) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Completed Steps"))
		b.WriteString("\n")

		// Show last 5 completions
		start := 0
		if len(m.completed) > 5 {
			start = len(m.completed) - 5
		}

		for _, result := range m.completed[start:] {
			line := fmt.Sprintf("  %s %s", m.formatOutcome(result), result.Title())
			if result.Detail() != "" {
				line += " " + m.styles.Detail.Render(result.Detail())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	// Done message
	if m.done {
		b.WriteString("\n")
		switch {
		case m.fatalFailed():
			res, _ := m.report.FatalFailure()
			msg := fmt.Sprintf("Aborted: %s failed", res.Title())
			b.WriteString(m.styles.Error.Render(msg))
		case m.stepsFailed > 0:
			msg := fmt.Sprintf("Completed with %d recoverable failures", m.stepsFailed)
			b.WriteString(m.styles.Warning.Render(msg))
		case m.dryRun:
			b.WriteString(m.styles.DryRun.Render("Dry-run complete. No changes were made."))
		default:
			b.WriteString(m.styles.Success.Render("All steps completed successfully!"))
		}
		b.WriteString("\n")
	}

	// Footer
	if !m.done {
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("Ctrl+C to cancel"))
	}

	return b.String()
}

// fatalFailed reports whether the finished run was aborted by a fatal step.
func (m upProgressModel) fatalFailed() bool {
	if !m.haveReport {
		return false
	}
	_, fatal := m.report.FatalFailure()
	return fatal
}

// formatOutcome returns a styled status indicator for a result.
func (m upProgressModel) formatOutcome(result pipeline.StepResult) string {
	switch result.Outcome() {
	case step.OutcomeAlreadySatisfied:
		return m.styles.Success.Render("✓")
	case step.OutcomeApplied:
		return m.styles.Success.Render("✓")
	case step.OutcomeSimulated:
		return m.styles.DryRun.Render("»")
	case step.OutcomeFailed:
		if result.FatalFailure() {
			return m.styles.Error.Render("✗")
		}
		return m.styles.Warning.Render("!")
	}
	return "?"
}
