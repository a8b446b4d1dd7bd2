package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/metrics"
	"github.com/san-kum/chromafill/internal/palette"
)

const frameRate = 30

type TickMsg time.Time

// restartMsg starts a fresh run on the board.
type restartMsg struct{}

// Model is the live view: the grid on the left, run state and drift on the
// right. The traversal runs in its own goroutine and writes to board; the
// view only reads snapshots of it.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	engine *fill.Engine
	board  *Board
	bg     palette.Color // zero when the theme canvas is used
	fixed  bool
	theme  Theme

	run      *fill.Run
	result   *fill.Result
	err      error
	restarts int
	showHelp bool
	quitting bool
}

// NewModel builds the engine for cfg. ctx bounds every run started by the
// model, including the ones triggered by the reset key.
func NewModel(ctx context.Context, cfg *config.Config) (Model, error) {
	eng, err := cfg.Engine()
	if err != nil {
		return Model{}, err
	}
	for _, m := range metrics.Default(eng.Grid()) {
		eng.AddMetric(m)
	}

	m := Model{
		ctx:    ctx,
		cfg:    cfg,
		engine: eng,
		board:  NewBoard(cfg.Cols),
		theme:  GetTheme(cfg.Theme),
	}
	if cfg.Background != "" {
		bg, err := cfg.BackgroundColor()
		if err != nil {
			return Model{}, err
		}
		m.bg, m.fixed = bg.Blend(palette.RGB(0, 0, 0)), true
	}
	return m, nil
}

// canvas is the configured background, or the theme's when none is set.
func (m Model) canvas() palette.Color {
	if m.fixed {
		return m.bg
	}
	return m.theme.Canvas
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return restartMsg{} }, tick())
}

// Update handles keys and polls the active run on every frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop()
			m.quitting = true
			return m, tea.Quit
		case " ":
			if m.run != nil {
				m.run.Toggle()
			}
		case "c":
			if m.run != nil {
				m.run.Cancel()
			}
		case "r":
			m.stop()
			return m, func() tea.Msg { return restartMsg{} }
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case restartMsg:
		m.start()
	case TickMsg:
		m.poll()
		return m, tick()
	}
	return m, nil
}

// start clears the board and launches a new traversal.
func (m *Model) start() {
	if m.run != nil {
		return
	}
	m.board.BuildGrid(m.cfg.Cols)
	m.result, m.err = nil, nil

	run, err := m.engine.Start(m.ctx, m.board)
	if err != nil {
		m.err = err
		return
	}
	m.run = run
	m.restarts++
}

// stop cancels the active run and waits for the traversal to return. Cancel
// interrupts the step delay and wakes a paused run, so this does not block
// for long.
func (m *Model) stop() {
	if m.run == nil {
		return
	}
	m.run.Cancel()
	m.result, m.err = m.run.Wait()
	m.run = nil
}

func (m *Model) poll() {
	if m.run == nil {
		return
	}
	select {
	case <-m.run.Done():
		m.result, m.err = m.run.Wait()
		m.run = nil
	default:
	}
}

// State is the state of the active run, or Idle between runs.
func (m Model) State() fill.State {
	if m.run == nil {
		return fill.Idle
	}
	return m.run.State()
}

// Result is the outcome of the last finished run, or nil.
func (m Model) Result() (*fill.Result, error) { return m.result, m.err }

func (m Model) Config() *config.Config { return m.cfg }
func (m Model) Theme() Theme           { return m.theme }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := stylesFor(m.theme)

	gridView := lipgloss.NewStyle().Padding(1, 2).Render(m.renderGrid())

	var s strings.Builder
	s.WriteString(GradientText("CHROMAFILL", m.theme.Title, m.theme.Accent) + "\n\n")

	state := m.State()
	s.WriteString(st.status[state].Render(state.String()) + "\n\n")

	total := m.engine.Grid().Size()
	colored := m.board.Colored()
	s.WriteString(ProgressBar(float64(colored)/float64(total), 24, m.theme) + "\n")
	s.WriteString(st.label.Render("Colored") + st.value.Render(fmt.Sprintf("%d/%d", colored, total)) + "\n")
	s.WriteString(st.label.Render("Coherence") + st.value.Render(fmt.Sprintf("%.2f", m.cfg.Coherence)) + "\n")
	s.WriteString(st.label.Render("Opacity") + st.value.Render(fmt.Sprintf("%.2f", m.cfg.Opacity)) + "\n")
	s.WriteString(st.label.Render("Delay") + st.value.Render(m.cfg.StepDelay().String()) + "\n")
	s.WriteString(st.label.Render("Run") + st.value.Render(fmt.Sprintf("#%d", m.restarts)) + "\n")

	drift := m.board.Drift()
	if len(drift) > 1 {
		window := drift
		if len(window) > 120 {
			window = window[len(window)-120:]
		}
		chart := asciigraph.Plot(window, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Color drift"))
		s.WriteString(st.graph.Render(chart) + "\n")
	} else {
		s.WriteString("\n" + SparklineChart(drift, 30) + "\n")
	}

	if m.result != nil {
		s.WriteString(st.label.Render("Mean drift") + st.value.Render(fmt.Sprintf("%.2f", m.result.Metrics["color_drift"])) + "\n")
		s.WriteString(st.label.Render("Max depth") + st.value.Render(fmt.Sprintf("%.0f", m.result.Metrics["max_depth"])) + "\n")
		if m.result.Canceled {
			s.WriteString(lipgloss.NewStyle().Foreground(ink(m.theme.Paused)).Render("canceled") + "\n")
		}
	}
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(ink(m.theme.Alert)).Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(30, m.theme) + "\n")
	s.WriteString(st.help.Render("SP:Pause C:Cancel R:Reset\nT:Theme  ?:Help    Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, gridView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume the fill    ║
║  C        - Cancel the fill          ║
║  R        - Clear and start again    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// renderGrid draws every cell as two spaces with the cell color as the
// background. Terminals have no alpha, so colors are blended over the
// canvas first. Unreached cells show a dot in the theme's empty color.
func (m Model) renderGrid() string {
	cells, colored := m.board.Snapshot()
	cols := m.board.Cols()
	grid := m.engine.Grid()

	bg := m.canvas()
	empty := lipgloss.NewStyle().Background(ink(bg)).Foreground(ink(m.theme.Empty)).Render(" ·")
	obstacle := lipgloss.NewStyle().Background(ink(m.theme.Obstacle)).Foreground(ink(m.theme.Muted)).Render("░░")

	var sb strings.Builder
	for row := 0; row < cols; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			switch {
			case colored[idx]:
				c := cells[idx].Blend(bg)
				sb.WriteString(lipgloss.NewStyle().Background(ink(c)).Render("  "))
			case grid.Blocked(idx):
				sb.WriteString(obstacle)
			default:
				sb.WriteString(empty)
			}
		}
		if row < cols-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
