package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/logging"
	"github.com/san-kum/chromafill/internal/metrics"
	"github.com/san-kum/chromafill/internal/storage"
	"github.com/san-kum/chromafill/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	configFile string
	preset     string
	cols       int
	coherence  float64
	opacity    float64
	delayMs    float64
	startFrom  string
	seed       int64
	background string
	theme      string
	blocked    []int

	saveLive bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chromafill",
		Short:        "breadth-first color fill over a square grid",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(logging.Options{Level: logLevel, Format: logFormat})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chromafill", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "fill a grid headless and store the result",
		Args:  cobra.NoArgs,
		RunE:  runFill,
	}
	addFillFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "fill a grid live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addFillFlags(liveCmd)
	liveCmd.Flags().BoolVar(&saveLive, "save", false, "store the last finished run on exit")

	rootCmd.AddCommand(runCmd, liveCmd)
	rootCmd.AddCommand(runCommands()...)
	rootCmd.AddCommand(toolCommands()...)

	return rootCmd
}

// addFillFlags registers the flags that describe one fill.
func addFillFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid side length")
	cmd.Flags().Float64Var(&coherence, "coherence", config.DefaultCoherence, "color coherence in [0, 1]")
	cmd.Flags().Float64Var(&opacity, "opacity", config.DefaultOpacity, "color opacity in [0, 1]")
	cmd.Flags().Float64Var(&delayMs, "delay", config.DefaultStepDelayMs, "delay between steps in ms")
	cmd.Flags().StringVar(&startFrom, "from", config.DefaultStartFrom, "start cell (top-left, top-right, bottom-left, bottom-right, center)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&background, "background", config.DefaultBackground, "background color")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "panel theme ("+fmt.Sprint(viz.ThemeNames())+")")
	cmd.Flags().IntSliceVar(&blocked, "block", nil, "cell indices to block")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("coherence") {
		cfg.Coherence = coherence
	}
	if flags.Changed("opacity") {
		cfg.Opacity = opacity
	}
	if flags.Changed("delay") {
		cfg.StepDelayMs = delayMs
	}
	if flags.Changed("from") {
		cfg.StartFrom = startFrom
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("block") {
		cfg.Blocked = blocked
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := cfg.Engine()
	if err != nil {
		return err
	}
	for _, m := range metrics.Default(eng.Grid()) {
		eng.AddMetric(m)
	}

	// interrupting keeps the cells colored so far; the partial run is stored
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("filling %dx%d grid from %s...\n", cfg.Cols, cfg.Cols, cfg.StartFrom)

	result, err := eng.Run(ctx, nil)
	if result == nil {
		return err
	}

	runID, saveErr := st.Save(cfg, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("colored: %d, remaining: %d\n", len(result.Assignments), result.Remaining)
	if result.Canceled {
		fmt.Println("canceled before completion")
	}
	printMetrics(result.Metrics)

	if err != nil && result.Canceled {
		return nil
	}
	return err
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	// the terminal belongs to the UI while it runs
	logFile, err := os.OpenFile(filepath.Join(dataDir, "live.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := logging.Init(logging.Options{Level: logLevel, Format: logFormat, Output: logFile}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, err := viz.NewModel(ctx, cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if !saveLive {
		return nil
	}
	fm, ok := final.(viz.Model)
	if !ok {
		return nil
	}
	result, _ := fm.Result()
	if result == nil {
		fmt.Println("no finished run to save")
		return nil
	}
	runID, err := st.Save(fm.Config(), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}
