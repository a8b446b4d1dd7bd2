package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/fill"
)

func testModel(t *testing.T, delayMs float64) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Cols = 4
	cfg.StepDelayMs = delayMs
	cfg.Blocked = []int{0}

	m, err := NewModel(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_RunToCompletion(t *testing.T) {
	m := update(t, testModel(t, 0), restartMsg{})
	if m.run == nil {
		t.Fatalf("expected an active run, err %v", m.err)
	}

	<-m.run.Done()
	m = update(t, m, TickMsg{})

	if m.State() != fill.Idle {
		t.Errorf("expected IDLE after completion, got %s", m.State())
	}
	res, err := m.Result()
	if err != nil || res == nil {
		t.Fatalf("expected a result, got %v", err)
	}
	if res.Remaining != 1 {
		t.Errorf("expected only the obstacle uncolored, got %d", res.Remaining)
	}
	if m.board.Colored() != 15 {
		t.Errorf("expected 15 cells on the board, got %d", m.board.Colored())
	}

	view := m.View()
	for _, want := range []string{"IDLE", "15/16", "Color drift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestModel_PauseCancelReset(t *testing.T) {
	m := update(t, testModel(t, 50), restartMsg{})
	run := m.run

	m = update(t, m, key(" "))
	if m.State() != fill.Paused {
		t.Errorf("expected PAUSED, got %s", m.State())
	}
	m = update(t, m, key(" "))
	if m.State() != fill.Running {
		t.Errorf("expected RUNNING, got %s", m.State())
	}

	m = update(t, m, key("c"))
	<-run.Done()
	m = update(t, m, TickMsg{})
	if res, _ := m.Result(); res == nil || !res.Canceled {
		t.Fatalf("expected a canceled result, got %+v", res)
	}

	next, cmd := m.Update(key("r"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("reset should schedule a restart")
	}
	if _, ok := cmd().(restartMsg); !ok {
		t.Fatal("reset should produce a restart message")
	}
	m = update(t, m, restartMsg{})
	if m.run == nil || m.run == run {
		t.Fatal("expected a fresh run after reset")
	}
	if m.restarts != 2 {
		t.Errorf("expected 2 runs started, got %d", m.restarts)
	}

	next, cmd = m.Update(key("q"))
	m = next.(Model)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.run != nil {
		t.Error("quit should stop the active run")
	}
}

func TestModel_CycleTheme(t *testing.T) {
	m := testModel(t, 0)
	first := m.Theme().Name

	m = update(t, m, key("t"))
	if m.Theme().Name == first {
		t.Error("theme did not change")
	}
	for i := 0; i < len(Themes)-1; i++ {
		m = update(t, m, key("t"))
	}
	if m.Theme().Name != first {
		t.Errorf("expected to cycle back to %s, got %s", first, m.Theme().Name)
	}
}

func TestNewModel_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Coherence = 4
	if _, err := NewModel(context.Background(), cfg); err == nil {
		t.Error("expected an error for coherence 4")
	}
}

func TestThemes_GridShades(t *testing.T) {
	seen := make(map[string]bool)
	for _, th := range Themes {
		if seen[th.Name] {
			t.Errorf("duplicate theme %s", th.Name)
		}
		seen[th.Name] = true

		if th.Empty == th.Canvas || th.Obstacle == th.Canvas || th.Obstacle == th.Empty {
			t.Errorf("%s: empty %s and obstacle %s must differ from canvas %s",
				th.Name, th.Empty.Hex(), th.Obstacle.Hex(), th.Canvas.Hex())
		}
		if d1, d2 := th.Canvas.Distance(th.Empty), th.Canvas.Distance(th.Obstacle); d1 >= d2 {
			t.Errorf("%s: obstacle should stand out more than unreached cells (%.1f >= %.1f)", th.Name, d1, d2)
		}
	}

	if GetTheme("no-such-theme").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first one")
	}
	if GetTheme(config.DefaultTheme).Name != config.DefaultTheme {
		t.Errorf("default theme %s is not defined", config.DefaultTheme)
	}
}

func TestModel_Canvas(t *testing.T) {
	m := testModel(t, 0)
	if got := m.canvas().Hex(); got != strings.ToLower(config.DefaultBackground) {
		t.Errorf("expected configured background %s, got %s", config.DefaultBackground, got)
	}

	cfg := config.DefaultConfig()
	cfg.Cols = 3
	cfg.Background = ""
	m, err := NewModel(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if m.canvas() != m.Theme().Canvas {
		t.Errorf("expected theme canvas %s, got %s", m.Theme().Canvas.Hex(), m.canvas().Hex())
	}

	m = update(t, m, key("t"))
	if m.canvas() != m.Theme().Canvas {
		t.Error("canvas should follow the theme when no background is configured")
	}
}
