package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	progress := NewProgress()

	assert.Equal(t, 0.0, progress.Percent())
}

func TestProgress_SetSteps(t *testing.T) {
	t.Parallel()

	progress := NewProgress().SetSteps(3, 9)

	assert.InDelta(t, 0.333, progress.Percent(), 0.01)
}

func TestProgress_SetSteps_Clamps(t *testing.T) {
	t.Parallel()

	progress := NewProgress().SetSteps(12, 9)
	assert.Equal(t, 1.0, progress.Percent())

	progress = NewProgress().SetSteps(-1, 9)
	assert.Equal(t, 0.0, progress.Percent())
}

func TestProgress_Percent_EmptyStack(t *testing.T) {
	t.Parallel()

	progress := NewProgress().SetSteps(0, 0)

	assert.Equal(t, 0.0, progress.Percent())
}

func TestProgress_View(t *testing.T) {
	t.Parallel()

	progress := NewProgress().SetSteps(4, 8).WithWidth(22)

	view := progress.View()

	assert.Contains(t, view, " 50%")
	assert.Equal(t, 10, strings.Count(view, "█"), "half the bar should be filled")
	assert.Equal(t, 10, strings.Count(view, "░"), "half the bar should be empty")
}

func TestProgress_View_Complete(t *testing.T) {
	t.Parallel()

	progress := NewProgress().SetSteps(9, 9).WithWidth(12)

	view := progress.View()

	assert.Contains(t, view, "100%")
	assert.NotContains(t, view, "░", "a finished bar has no empty cells")
}

func TestSpinner_View(t *testing.T) {
	t.Parallel()

	view := NewSpinner().View()

	assert.NotEmpty(t, view)
}

func TestSpinner_Update_Advances(t *testing.T) {
	t.Parallel()

	s := NewSpinner()

	_, cmd := s.Update(spinner.TickMsg{})

	assert.NotNil(t, cmd, "a tick should schedule the next frame")
}
