package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/logging"
	"github.com/san-kum/chromafill/internal/metrics"
	"github.com/san-kum/chromafill/internal/storage"
)

var (
	ErrUnknownPreset = errors.New("automation: unknown preset")
	ErrInvalidSweep  = errors.New("automation: invalid sweep")
)

// Scenario is a scripted sequence of fills.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies only the
// keys present under config.
type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
	Save   bool      `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty when the
// step was not saved.
type StepResult struct {
	Name   string
	RunID  string
	Config *config.Config
	Result *fill.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve builds the run configuration of a step.
func (s *ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes every step in order. Steps marked save are written to
// store when store is non-nil. Results of completed steps are returned even
// when a later step fails.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store) ([]StepResult, error) {
	logger := logging.New("automation")
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		logger.Info("running scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		eng, err := cfg.Engine()
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		for _, m := range metrics.Default(eng.Grid()) {
			eng.AddMetric(m)
		}

		res, err := eng.Run(ctx, nil)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Config: cfg, Result: res}
		if step.Save && store != nil {
			if sr.RunID, err = store.Save(cfg, res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// CoherenceSweep measures how smooth fills are across a range of coherence
// values. Every point runs Runs independent traversals of Base.
type CoherenceSweep struct {
	Base     *config.Config
	Min      float64
	Max      float64
	NumSteps int
	Runs     int
}

type SweepResult struct {
	Coherence float64
	MeanDrift float64
	StdDrift  float64
	MaxDepth  float64
}

func (s *CoherenceSweep) validate() error {
	if s.Base == nil {
		return fmt.Errorf("%w: no base config", ErrInvalidSweep)
	}
	if s.NumSteps < 1 || s.Runs < 1 {
		return fmt.Errorf("%w: steps and runs must be positive", ErrInvalidSweep)
	}
	if s.Min < 0 || s.Max > 1 || s.Min > s.Max {
		return fmt.Errorf("%w: coherence range [%v, %v]", ErrInvalidSweep, s.Min, s.Max)
	}
	return nil
}

// RunSweep executes the sweep, one ensemble per coherence value.
func RunSweep(ctx context.Context, sweep *CoherenceSweep) ([]SweepResult, error) {
	if err := sweep.validate(); err != nil {
		return nil, err
	}
	logger := logging.New("automation")

	step := 0.0
	if sweep.NumSteps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *sweep.Base
		cfg.Coherence = math.Min(sweep.Min+float64(i)*step, 1)
		cfg.StepDelayMs = 0

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		grid, err := cfg.Grid()
		if err != nil {
			return nil, err
		}
		fc, err := cfg.FillConfig()
		if err != nil {
			return nil, err
		}

		ens := fill.NewEnsemble(grid, fc, sweep.Runs)
		ens.NewMetrics = metrics.Default

		runs, err := ens.Run(ctx)
		if err != nil {
			return nil, err
		}

		drift := make([]float64, len(runs))
		maxDepth := 0.0
		for j, r := range runs {
			drift[j] = r.Metrics["color_drift"]
			maxDepth = math.Max(maxDepth, r.Metrics["max_depth"])
		}
		mean, std := meanStd(drift)

		results = append(results, SweepResult{
			Coherence: cfg.Coherence,
			MeanDrift: mean,
			StdDrift:  std,
			MaxDepth:  maxDepth,
		})
		logger.Debug("sweep point done", "coherence", cfg.Coherence, "mean_drift", mean)
	}

	return results, nil
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(std / float64(len(xs)))
}
