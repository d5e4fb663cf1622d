package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// NewScoreBar creates a bar for a 0-10 score, colored by how good the
// score is.
func NewScoreBar(label string, score float64, width int) ProgressBar {
	fill := theme.Error
	switch {
	case score >= 7:
		fill = theme.Success
	case score >= 4:
		fill = theme.Accent
	}
	pct := score / 10
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}
	return ProgressBar{
		Label:   label,
		Percent: pct,
		Width:   width,
		Fill:    fill,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
