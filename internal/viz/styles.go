package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

// panelStyles are derived from the active theme on every frame.
type panelStyles struct {
	panel  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	status map[fill.State]lipgloss.Style
}

func stylesFor(t Theme) panelStyles {
	return panelStyles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ink(t.Muted)).
			Padding(1, 2).
			Width(42),
		label: lipgloss.NewStyle().Foreground(ink(t.Muted)).Width(12),
		value: lipgloss.NewStyle().Foreground(ink(t.Text)),
		graph: lipgloss.NewStyle().Foreground(ink(t.Accent)).Padding(1, 0),
		help:  lipgloss.NewStyle().Foreground(ink(t.Muted)).Italic(true).MarginTop(1),
		status: map[fill.State]lipgloss.Style{
			fill.Running: lipgloss.NewStyle().Bold(true).Foreground(ink(t.Running)),
			fill.Paused:  lipgloss.NewStyle().Bold(true).Foreground(ink(t.Paused)),
			fill.Idle:    lipgloss.NewStyle().Bold(true).Foreground(ink(t.Muted)),
		},
	}
}

// GradientText colors each rune of text on a L*a*b* ramp from start to end.
func GradientText(text string, from, to palette.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.Lerp(to, t)
		sb.WriteString(lipgloss.NewStyle().Foreground(ink(c)).Render(string(r)))
	}
	return sb.String()
}

// ProgressBar renders percent in [0, 1] as a bar of width cells.
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent >= 1:
		return lipgloss.NewStyle().Foreground(ink(t.Running)).Render(bar)
	case percent > 0.4:
		return lipgloss.NewStyle().Foreground(ink(t.Accent)).Render(bar)
	default:
		return lipgloss.NewStyle().Foreground(ink(t.Title)).Render(bar)
	}
}

// SparklineChart renders the most recent values as one row of block glyphs.
func SparklineChart(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		sb.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return sb.String()
}

func Separator(width int, t Theme) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	line := strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
	return lipgloss.NewStyle().Foreground(ink(t.Muted)).Render(line)
}
