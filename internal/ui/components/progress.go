package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0..1 ratio.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	// LabelWidth pads the label so bars in a list line up.
	LabelWidth int
	// Suffix is rendered after the percentage, e.g. a level name.
	Suffix string
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(p.LabelWidth).
			Render(p.Label) + "  "
	}

	percent := min(max(p.Percent, 0), 1)

	tail := ""
	if p.ShowPercent {
		tail += fmt.Sprintf("  %3d%%", int(percent*100+0.5))
	}
	if p.Suffix != "" {
		tail += "  " + p.Suffix
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(tail)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * percent)
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if tail != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(tail)
	}

	return result
}
