package fill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/chromafill/internal/logging"
	"github.com/san-kum/chromafill/internal/palette"
)

// Sink receives every color assignment in emission order.
type Sink interface {
	SetCellColor(index int, c palette.Color)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(index int, c palette.Color)

func (f SinkFunc) SetCellColor(index int, c palette.Color) { f(index, c) }

type discardSink struct{}

func (discardSink) SetCellColor(int, palette.Color) {}

type Observer interface {
	OnAssign(a Assignment)
}

type Metric interface {
	Name() string
	Observe(a Assignment)
	Value() float64
	Reset()
}

type Config struct {
	Start     int
	StepDelay time.Duration
	Coherence float64
	Opacity   float64
	Seed      int64
}

// Assignment is one emitted (cell, color) pair.
type Assignment struct {
	Step  int
	Index int
	Depth int // breadth-first distance from the start cell
	Color palette.Color
}

type Result struct {
	Assignments []Assignment
	Remaining   int // cells left uncolored
	Canceled    bool
	Metrics     map[string]float64
	Elapsed     time.Duration
}

// Covered reports whether every cell of the grid was colored.
func (r *Result) Covered() bool { return r.Remaining == 0 }

// Engine drives traversals over one grid. At most one run is active at a time.
type Engine struct {
	grid      *Grid
	cfg       Config
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger

	mu     sync.Mutex
	active *Run
	runs   int64
}

// New validates cfg against grid. Every precondition of a run is checked here
// so that Start only fails on re-entrancy.
func New(grid *Grid, cfg Config) (*Engine, error) {
	if grid == nil {
		return nil, ErrInvalidGridSize
	}
	if !grid.Contains(cfg.Start) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrStartIndexOutOfRange, cfg.Start, grid.Size())
	}
	if grid.Blocked(cfg.Start) {
		return nil, fmt.Errorf("%w: %d", ErrStartBlocked, cfg.Start)
	}
	if cfg.StepDelay < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDelay, cfg.StepDelay)
	}
	if _, err := palette.NewGenerator(cfg.Coherence, cfg.Opacity, cfg.Seed); err != nil {
		return nil, err
	}
	return &Engine{
		grid:      grid,
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logging.New("fill"),
	}, nil
}

// AddMetric registers m for every run started after the call. A run already
// in progress keeps the metrics it started with.
func (e *Engine) AddMetric(m Metric) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = append(e.metrics, m)
}

// AddObserver registers o for every run started after the call.
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

func (e *Engine) Grid() *Grid    { return e.grid }
func (e *Engine) Config() Config { return e.cfg }

// Active returns the run in progress, or nil.
func (e *Engine) Active() *Run {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Start launches a traversal and returns its control handle. Each run after
// the first uses the next seed, so restarted runs produce fresh colors.
func (e *Engine) Start(ctx context.Context, sink Sink) (*Run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, ErrAlreadyRunning
	}
	if sink == nil {
		sink = discardSink{}
	}

	gen, err := palette.NewGenerator(e.cfg.Coherence, e.cfg.Opacity, e.cfg.Seed+e.runs)
	if err != nil {
		return nil, err
	}

	t := &traversal{
		run:       newRun(),
		gen:       gen,
		sink:      sink,
		metrics:   append([]Metric(nil), e.metrics...),
		observers: append([]Observer(nil), e.observers...),
	}
	r := t.run
	e.active = r
	e.runs++

	go func() {
		res, err := e.traverse(ctx, t)

		e.mu.Lock()
		e.active = nil
		e.mu.Unlock()

		r.finish(res, err)
	}()

	return r, nil
}

// Run is Start followed by Wait.
func (e *Engine) Run(ctx context.Context, sink Sink) (*Result, error) {
	r, err := e.Start(ctx, sink)
	if err != nil {
		return nil, err
	}
	return r.Wait()
}

// traversal is what one run works with, fixed when it starts.
type traversal struct {
	run       *Run
	gen       *palette.Generator
	sink      Sink
	metrics   []Metric
	observers []Observer
}

func (e *Engine) traverse(ctx context.Context, t *traversal) (*Result, error) {
	r, gen, sink := t.run, t.gen, t.sink
	began := time.Now()
	total := e.grid.Size()

	uncolored := make([]bool, total)
	for i := range uncolored {
		uncolored[i] = true
	}
	remaining := total

	visited := make([]bool, total)
	depth := make([]int, total)
	queue := []int{e.cfg.Start}
	visited[e.cfg.Start] = true

	for _, m := range t.metrics {
		m.Reset()
	}

	result := &Result{
		Assignments: make([]Assignment, 0, total),
		Metrics:     make(map[string]float64),
	}

	e.logger.Debug("traversal started",
		"cols", e.grid.Cols(), "start", e.cfg.Start, "coherence", e.cfg.Coherence, "delay", e.cfg.StepDelay)

	color := gen.Next(nil)

	for remaining > 0 && len(queue) > 0 {
		if r.CancelRequested() || ctx.Err() != nil {
			result.Canceled = true
			break
		}
		if !r.waitWhilePaused(ctx) {
			result.Canceled = true
			break
		}

		next := queue[0]
		queue = queue[1:]

		// duplicates are never enqueued, but a stale entry is skipped without
		// emitting or sleeping
		if !uncolored[next] {
			continue
		}

		a := Assignment{Step: len(result.Assignments), Index: next, Depth: depth[next], Color: color}
		sink.SetCellColor(next, color)
		uncolored[next] = false
		remaining--

		result.Assignments = append(result.Assignments, a)
		for _, m := range t.metrics {
			m.Observe(a)
		}
		for _, obs := range t.observers {
			obs.OnAssign(a)
		}

		prev := color
		color = gen.Next(&prev)

		for _, n := range e.grid.Neighbors(next) {
			if uncolored[n] && !visited[n] {
				visited[n] = true
				depth[n] = depth[next] + 1
				queue = append(queue, n)
			}
		}

		r.sleep(ctx, e.cfg.StepDelay)
	}

	result.Remaining = remaining
	result.Elapsed = time.Since(began)
	for _, m := range t.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if result.Canceled {
		e.logger.Info("traversal canceled", "colored", len(result.Assignments), "remaining", remaining)
	} else {
		e.logger.Debug("traversal finished", "colored", len(result.Assignments), "remaining", remaining, "elapsed", result.Elapsed)
	}

	if result.Canceled && ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, nil
}
