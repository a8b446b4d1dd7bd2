package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chromafill/internal/palette"
)

// Theme colors everything on screen except filled cells, which always show
// the color the fill assigned them.
type Theme struct {
	Name string

	Canvas   palette.Color // grid background when the config leaves it empty
	Empty    palette.Color // marker of cells the fill has not reached yet
	Obstacle palette.Color

	Title  palette.Color
	Accent palette.Color
	Text   palette.Color
	Muted  palette.Color

	Running palette.Color
	Paused  palette.Color
	Alert   palette.Color
}

var (
	statusRunning = palette.RGB(0x5f, 0xd0, 0x68)
	statusPaused  = palette.RGB(0xff, 0xb0, 0x3b)
	statusAlert   = palette.RGB(0xff, 0x47, 0x57)
)

// newTheme derives the grid greys from canvas and text so unreached cells
// and obstacles stay a fixed step apart in every theme.
func newTheme(name string, canvas, text, title, accent palette.Color) Theme {
	return Theme{
		Name:     name,
		Canvas:   canvas,
		Empty:    canvas.Lerp(text, 0.12),
		Obstacle: canvas.Lerp(text, 0.3),
		Title:    title,
		Accent:   accent,
		Text:     text,
		Muted:    canvas.Lerp(text, 0.5),
		Running:  statusRunning,
		Paused:   statusPaused,
		Alert:    statusAlert,
	}
}

var Themes = []Theme{
	newTheme("ember", palette.RGB(0x14, 0x0c, 0x0a), palette.RGB(0xf6, 0xe7, 0xdc),
		palette.RGB(0xff, 0x70, 0x2e), palette.RGB(0xff, 0xc8, 0x57)),
	newTheme("glacier", palette.RGB(0x08, 0x12, 0x1c), palette.RGB(0xe2, 0xf1, 0xfb),
		palette.RGB(0x4f, 0xb3, 0xe8), palette.RGB(0xa8, 0xe6, 0xdc)),
	newTheme("moss", palette.RGB(0x0c, 0x14, 0x0c), palette.RGB(0xd8, 0xec, 0xc8),
		palette.RGB(0x7c, 0xc5, 0x4a), palette.RGB(0xd9, 0xe0, 0x5a)),
	newTheme("slate", palette.RGB(0x10, 0x10, 0x14), palette.RGB(0xee, 0xee, 0xf2),
		palette.RGB(0xb4, 0xb8, 0xc8), palette.RGB(0x6a, 0x8c, 0xff)),
	newTheme("paper", palette.RGB(0xf4, 0xf0, 0xe6), palette.RGB(0x22, 0x1e, 0x1a),
		palette.RGB(0xb0, 0x3a, 0x2e), palette.RGB(0x2e, 0x5e, 0xaa)),
}

func ink(c palette.Color) lipgloss.Color { return lipgloss.Color(c.Hex()) }

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
