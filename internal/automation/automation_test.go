package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/storage"
)

const scenarioYAML = `name: demo
description: two quick fills
steps:
  - name: noisy
    preset: noise
    config:
      cols: 4
      step_delay_ms: 0
    save: true
  - config:
      cols: 3
      coherence: 1
      step_delay_ms: 0
      start_from: top-left
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	cfg, err := sc.Steps[0].Resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	noise := config.GetPreset("noise")
	if cfg.Cols != 4 {
		t.Errorf("expected cols override 4, got %d", cfg.Cols)
	}
	if cfg.Coherence != noise.Coherence || cfg.Theme != noise.Theme {
		t.Errorf("expected preset values to survive, got %+v", cfg)
	}

	cfg, err = sc.Steps[1].Resolve()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Background != config.DefaultBackground {
		t.Errorf("expected default background, got %s", cfg.Background)
	}
}

func TestResolve_Errors(t *testing.T) {
	step := ScenarioStep{Preset: "missing"}
	if _, err := step.Resolve(); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}

	var bad ScenarioStep
	if err := yaml.Unmarshal([]byte("config:\n  coherence: 3\n"), &bad); err != nil {
		t.Fatal(err)
	}
	if _, err := bad.Resolve(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), sc, st)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Name != "noisy" || results[0].RunID == "" {
		t.Errorf("expected first step saved as noisy, got %+v", results[0])
	}
	if results[1].Name != "step-2" || results[1].RunID != "" {
		t.Errorf("expected unsaved second step, got %+v", results[1])
	}
	if results[1].Result.Metrics["color_drift"] != 0 {
		t.Errorf("coherence 1 should not drift, got %v", results[1].Result.Metrics["color_drift"])
	}
	for _, r := range results {
		if !r.Result.Covered() {
			t.Errorf("%s: expected full coverage", r.Name)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != results[0].RunID {
		t.Errorf("expected exactly the saved step in storage, got %d runs", len(runs))
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Cols = 8
	base.Seed = 5

	results, err := RunSweep(context.Background(), &CoherenceSweep{
		Base: base, Min: 0, Max: 1, NumSteps: 3, Runs: 4,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 points, got %d", len(results))
	}

	if results[0].Coherence != 0 || results[1].Coherence != 0.5 || results[2].Coherence != 1 {
		t.Errorf("unexpected coherence values %v, %v, %v",
			results[0].Coherence, results[1].Coherence, results[2].Coherence)
	}
	if !(results[0].MeanDrift > results[1].MeanDrift && results[1].MeanDrift > results[2].MeanDrift) {
		t.Errorf("expected drift to fall as coherence rises: %v, %v, %v",
			results[0].MeanDrift, results[1].MeanDrift, results[2].MeanDrift)
	}
	if results[2].MeanDrift != 0 || results[2].StdDrift != 0 {
		t.Errorf("expected zero drift at coherence 1, got %+v", results[2])
	}
	if results[0].MaxDepth != 8 {
		t.Errorf("expected max depth 8 from the center of 8x8, got %v", results[0].MaxDepth)
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []CoherenceSweep{
		{Min: 0, Max: 1, NumSteps: 2, Runs: 1},
		{Base: config.DefaultConfig(), Min: 0.5, Max: 0.2, NumSteps: 2, Runs: 1},
		{Base: config.DefaultConfig(), Min: 0, Max: 1, NumSteps: 0, Runs: 1},
	}
	for i, sw := range tests {
		if _, err := RunSweep(context.Background(), &sw); !errors.Is(err, ErrInvalidSweep) {
			t.Errorf("case %d: expected ErrInvalidSweep, got %v", i, err)
		}
	}
}
