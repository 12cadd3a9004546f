// Package components provides the building blocks the run screen is
// assembled from.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/airstrip/internal/tui/ui"
)

// Progress renders a bar that fills as provisioning steps complete.
type Progress struct {
	done   int
	total  int
	width  int
	styles ui.Styles
}

// NewProgress creates a progress bar with the default width and styles.
func NewProgress() Progress {
	return Progress{
		width:  40,
		styles: ui.DefaultStyles(),
	}
}

// SetSteps records how many steps have completed out of the total.
// Counts are clamped so a stray message can never render past the ends
// of the bar.
func (p Progress) SetSteps(done, total int) Progress {
	if total < 0 {
		total = 0
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	p.done = done
	p.total = total
	return p
}

// Percent returns the completed fraction (0.0 to 1.0). An empty stack
// reports zero.
func (p Progress) Percent() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// WithWidth sets the progress bar width.
func (p Progress) WithWidth(width int) Progress {
	p.width = width
	return p
}

// WithStyles sets the styles.
func (p Progress) WithStyles(styles ui.Styles) Progress {
	p.styles = styles
	return p
}

// View renders the bar with a trailing percentage.
func (p Progress) View() string {
	var b strings.Builder

	barWidth := p.width - 2 // Account for brackets
	filled := int(p.Percent() * float64(barWidth))
	empty := barWidth - filled

	bar := fmt.Sprintf("[%s%s]",
		strings.Repeat("█", filled),
		strings.Repeat("░", empty),
	)

	b.WriteString(p.styles.ProgressBar.Render(bar))
	b.WriteString(fmt.Sprintf(" %3.0f%%", p.Percent()*100))

	return b.String()
}

// Spinner marks the step currently being probed or applied.
type Spinner struct {
	spinner spinner.Model
}

// NewSpinner creates a new spinner component.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return Spinner{spinner: s}
}

// Init returns the initial command for the spinner.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner frame.
func (s Spinner) View() string {
	return s.spinner.View()
}
