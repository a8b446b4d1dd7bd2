package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/chromafill/internal/analysis"
	"github.com/san-kum/chromafill/internal/automation"
	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/export"
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/metrics"
	"github.com/san-kum/chromafill/internal/palette"
	"github.com/san-kum/chromafill/internal/storage"
)

var (
	svgOut    string
	svgCell   int
	plotRGB   bool
	plotSVG   string
	benchRuns int
	sweepN    int
	nextCount int
	saveSteps bool
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

// runCommands inspect and export stored runs.
func runCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a run and its assignments as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot color drift per step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotRGB, "rgb", false, "plot the r, g, b channels instead of drift")
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the drift curve to this svg file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "color spectrum and drift per ring",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export assignments with grid coordinates as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgCell, "cell", 16, "cell size in px")

	return []*cobra.Command{listCmd, showCmd, plotCmd, analyzeCmd, exportCSVCmd, exportSVGCmd}
}

// toolCommands do not touch stored runs, except scenario --save.
func toolCommands() []*cobra.Command {
	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	startCmd := &cobra.Command{
		Use:   "start [cols]",
		Short: "print the start index of every selector",
		Args:  cobra.ExactArgs(1),
		RunE:  printStarts,
	}

	nextCmd := &cobra.Command{
		Use:   "next [color]",
		Short: "generate colors following a previous one",
		Args:  cobra.ExactArgs(1),
		RunE:  nextColors,
	}
	nextCmd.Flags().Float64Var(&coherence, "coherence", config.DefaultCoherence, "color coherence in [0, 1]")
	nextCmd.Flags().Float64Var(&opacity, "opacity", config.DefaultOpacity, "color opacity in [0, 1]")
	nextCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 1, "number of colors")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run independent fills in parallel and compare them",
		Args:  cobra.NoArgs,
		RunE:  benchFill,
	}
	addFillFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 8, "fills per configuration")
	benchCmd.Flags().IntVar(&sweepN, "sweep", 0, "sweep coherence over this many values in [0, 1]")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveSteps, "save", true, "store steps marked save")

	return []*cobra.Command{presetsCmd, startCmd, nextCmd, benchCmd, scenarioCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "TIME", "GRID", "COHERENCE", "OPACITY", "FROM", "COLORED", "DRIFT"})
	for _, run := range runs {
		colored := fmt.Sprintf("%d/%d", run.Colored, run.Cols*run.Cols)
		if run.Canceled {
			colored += " (canceled)"
		}
		t.AppendRow(table.Row{
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%dx%d", run.Cols, run.Cols),
			fmt.Sprintf("%.2f", run.Coherence),
			fmt.Sprintf("%.2f", run.Opacity),
			run.StartFrom,
			colored,
			fmt.Sprintf("%.2f", run.Metrics["color_drift"]),
		})
	}
	t.Render()
	return nil
}

func loadRun(runID string) (*storage.RunMetadata, []fill.Assignment, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := st.LoadAssignments(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, assignments, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, assignments, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, assignments)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, assignments, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(assignments) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, coherence %.2f\n", meta.Cols, meta.Cols, meta.Coherence)
	fmt.Printf("steps: %d\n\n", len(assignments))

	if plotRGB {
		series := make([][]float64, 3)
		for ch := range series {
			series[ch] = make([]float64, len(assignments))
		}
		for i, a := range assignments {
			for ch, v := range a.Color.Channels() {
				series[ch][i] = float64(v)
			}
		}
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.Caption("r, g, b per step"),
		))
		return nil
	}

	drift := make([]float64, len(assignments)-1)
	for i := 1; i < len(assignments); i++ {
		drift[i-1] = assignments[i-1].Color.Distance(assignments[i].Color)
	}
	fmt.Println(asciigraph.Plot(drift,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("color distance between successive cells"),
	))

	if plotSVG != "" {
		if err := os.WriteFile(plotSVG, []byte(export.DriftToSVG(drift, 800, 240, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotSVG)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, assignments, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(assignments) < 4 {
		return fmt.Errorf("not enough data: %d assignments", len(assignments))
	}

	fmt.Printf("color analysis: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, coherence %.2f\n\n", meta.Cols, meta.Cols, meta.Coherence)

	t := newTable()
	t.AppendHeader(table.Row{"CHANNEL", "DOMINANT BIN", "PERIOD (STEPS)", "POWER"})
	series := analysis.ChannelSeries(assignments)
	for ch, name := range []string{"r", "g", "b"} {
		ps := analysis.PowerSpectrum(series[ch])
		bin, period := analysis.Dominant(ps)
		t.AppendRow(table.Row{name, bin, fmt.Sprintf("%.1f", period), fmt.Sprintf("%.1f", ps[bin])})
	}
	t.Render()

	rings := analysis.DriftByDepth(assignments)
	if len(rings) > 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(rings[1:],
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("mean drift per breadth-first ring"),
		))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, assignments, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"step", "index", "row", "col", "depth", "color", "hex"}); err != nil {
		return err
	}
	for _, a := range assignments {
		row, col := a.Index/meta.Cols, a.Index%meta.Cols
		record := []string{
			strconv.Itoa(a.Step),
			strconv.Itoa(a.Index),
			strconv.Itoa(row),
			strconv.Itoa(col),
			strconv.Itoa(a.Depth),
			a.Color.String(),
			a.Color.Hex(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, assignments, err := loadRun(args[0])
	if err != nil {
		return err
	}

	bg := palette.RGB(0, 0, 0)
	if meta.Background != "" {
		if bg, err = palette.ParseColor(meta.Background); err != nil {
			return err
		}
	}

	svg := export.GridToSVG(meta.Cols, assignments, bg, svgCell)
	if svgOut == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	t := newTable()
	t.AppendHeader(table.Row{"NAME", "GRID", "COHERENCE", "OPACITY", "DELAY", "FROM", "BACKGROUND", "THEME"})
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		t.AppendRow(table.Row{
			name,
			fmt.Sprintf("%dx%d", p.Cols, p.Cols),
			p.Coherence,
			p.Opacity,
			fmt.Sprintf("%gms", p.StepDelayMs),
			p.StartFrom,
			p.Background,
			p.Theme,
		})
	}
	t.Render()
	return nil
}

func printStarts(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid column count %q: %w", args[0], err)
	}

	t := newTable()
	t.AppendHeader(table.Row{"SELECTOR", "INDEX", "ROW", "COL"})
	for _, sel := range fill.Selectors {
		idx, err := fill.StartIndex(n, sel)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{sel, idx, idx / n, idx % n})
	}
	t.Render()
	return nil
}

func nextColors(cmd *cobra.Command, args []string) error {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	gen, err := palette.NewGenerator(coherence, opacity, s)
	if err != nil {
		return err
	}

	prev := args[0]
	for i := 0; i < nextCount; i++ {
		c, err := gen.NextFrom(prev)
		if err != nil {
			return err
		}
		fmt.Println(c.String())
		prev = c.String()
	}
	return nil
}

func benchFill(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("delay") {
		cfg.StepDelayMs = 0
	}

	ctx := context.Background()
	if sweepN > 0 {
		return benchSweep(ctx, cfg)
	}

	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	fc, err := cfg.FillConfig()
	if err != nil {
		return err
	}

	ens := fill.NewEnsemble(grid, fc, benchRuns)
	ens.NewMetrics = metrics.Default

	fmt.Printf("benchmarking %d fills of %dx%d\n\n", benchRuns, cfg.Cols, cfg.Cols)
	began := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	wall := time.Since(began)

	t := newTable()
	t.AppendHeader(table.Row{"RUN", "SEED", "COLORED", "DRIFT", "PERCEPTUAL", "MAX DEPTH", "TIME"})
	var drift float64
	for i, r := range results {
		drift += r.Metrics["color_drift"]
		t.AppendRow(table.Row{
			i,
			fc.Seed + int64(i),
			len(r.Assignments),
			fmt.Sprintf("%.2f", r.Metrics["color_drift"]),
			fmt.Sprintf("%.4f", r.Metrics["perceptual_drift"]),
			r.Metrics["max_depth"],
			r.Elapsed.Round(time.Microsecond),
		})
	}
	t.AppendFooter(table.Row{"", "", "mean", fmt.Sprintf("%.2f", drift/float64(len(results))), "", "", wall.Round(time.Microsecond)})
	t.Render()
	return nil
}

func benchSweep(ctx context.Context, cfg *config.Config) error {
	results, err := automation.RunSweep(ctx, &automation.CoherenceSweep{
		Base:     cfg,
		Min:      0,
		Max:      1,
		NumSteps: sweepN,
		Runs:     benchRuns,
	})
	if err != nil {
		return err
	}

	t := newTable()
	t.AppendHeader(table.Row{"COHERENCE", "MEAN DRIFT", "STD", "MAX DEPTH"})
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.MeanDrift
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", r.Coherence),
			fmt.Sprintf("%.2f", r.MeanDrift),
			fmt.Sprintf("%.2f", r.StdDrift),
			r.MaxDepth,
		})
	}
	t.Render()

	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(8), asciigraph.Caption("mean drift vs coherence")))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if saveSteps {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), sc, st)

	t := newTable()
	t.AppendHeader(table.Row{"STEP", "GRID", "COHERENCE", "COLORED", "DRIFT", "RUN ID"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Name,
			fmt.Sprintf("%dx%d", r.Config.Cols, r.Config.Cols),
			r.Config.Coherence,
			len(r.Result.Assignments),
			fmt.Sprintf("%.2f", r.Result.Metrics["color_drift"]),
			r.RunID,
		})
	}
	t.Render()
	return err
}
