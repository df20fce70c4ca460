package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/catsanzsh/flame64/internal/chaos"
	"github.com/catsanzsh/flame64/internal/config"
	"github.com/catsanzsh/flame64/internal/metrics"
	"github.com/catsanzsh/flame64/internal/store"
	"github.com/catsanzsh/flame64/internal/viz"
)

var (
	configFile string
	dataDir    string
	fps        int
	intervalMS int
	seed       int64
	theme      string
	// snapshot/stats/bench knobs
	snapTicks  int
	statTicks  int
	benchTicks int
	renderAt   float64
)

// main registers commands and flags; the bare command launches the
// live viewer over a randomly seeded field.
func main() {
	rootCmd := &cobra.Command{
		Use:   "flame64",
		Short: "ultrahle chaos core visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer("")
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "snapshot directory (overrides config)")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "viewer refresh rate (overrides config)")
	rootCmd.PersistentFlags().IntVar(&intervalMS, "interval", 0, "tick interval in ms (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed, 0 for wall clock")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "viewer theme (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run [romfile]",
		Short: "seed the chaos state from a file and watch it evolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(args[0])
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [romfile]",
		Short: "evolve offline and save a rendered frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapTicks, "ticks", 60, "evolution ticks before rendering")
	snapshotCmd.Flags().Float64Var(&renderAt, "now", -1, "render time in seconds, negative for wall clock")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}

	exportCmd := &cobra.Command{
		Use:   "export [snapshot_id]",
		Short: "print snapshot metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSnapshot,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [romfile]",
		Short: "evolve offline and chart grid observables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&statTicks, "ticks", 120, "evolution ticks to observe")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step+render throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 300, "ticks to time")

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "placeholder plug-in tools",
	}
	toolsCmd.AddCommand(
		&cobra.Command{
			Use:   "debugger",
			Short: "launch the chaos debugger",
			Run: func(cmd *cobra.Command, args []string) {
				loop := chaos.NewLoop(chaos.NewField(nil), chaos.DefaultInterval)
				fmt.Println(loop.LaunchDebugger())
			},
		},
		&cobra.Command{
			Use:   "inspector",
			Short: "launch the chaos inspector",
			Run: func(cmd *cobra.Command, args []string) {
				loop := chaos.NewLoop(chaos.NewField(nil), chaos.DefaultInterval)
				fmt.Println(loop.LaunchInspector())
			},
		},
	)

	rootCmd.AddCommand(runCmd, snapshotCmd, listCmd, exportCmd, statsCmd, benchCmd, toolsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: file values first,
// then CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if intervalMS > 0 {
		cfg.IntervalMS = intervalMS
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func newRNG(cfg *config.Config) *rand.Rand {
	if cfg.Seed != 0 {
		return rand.New(rand.NewSource(cfg.Seed))
	}
	return nil
}

func runViewer(seedPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loop := chaos.NewLoop(chaos.NewField(newRNG(cfg)), cfg.Interval())
	if seedPath != "" {
		if err := loop.LoadFile(seedPath); err != nil {
			return err
		}
	} else {
		loop.Start()
	}

	program := viz.NewProgram(loop, cfg, seedPath)
	if configFile != "" {
		watcher, err := config.NewWatcher(configFile)
		if err == nil {
			watcher.OnChange(func(c *config.Config) {
				program.Send(viz.ConfigMsg(c))
			})
			if err := watcher.Start(); err == nil {
				defer watcher.Stop()
			}
		}
	}

	_, err = program.Run()
	loop.Stop()
	return err
}

// seedField seeds from an optional rom path and reports the source.
func seedField(field *chaos.Field, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("load %s: %w", args[0], err)
	}
	field.Seed(data)
	return args[0], nil
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	field := chaos.NewField(newRNG(cfg))
	source, err := seedField(field, args)
	if err != nil {
		return err
	}

	for i := 0; i < snapTicks; i++ {
		field.Step()
	}
	now := renderAt
	if now < 0 {
		now = float64(time.Now().UnixNano()) / 1e9
	}
	field.Render(now)

	values := make(map[string]float64)
	for _, m := range metrics.Defaults() {
		m.Observe(field.Grid())
		values[m.Name()] = m.Value()
	}

	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.SaveSnapshot(field.Frame(), store.SnapshotMetadata{
		SeedSource: source,
		SeedBytes:  field.SeedLen(),
		Ticks:      uint64(snapTicks),
		IntervalMS: cfg.IntervalMS,
		Metrics:    values,
	})
	if err != nil {
		return err
	}

	fmt.Printf("snapshot id: %s\n", id)
	for name, val := range values {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snaps, err := store.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTICKS\tENTROPY")
	for _, snap := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\n",
			snap.ID,
			snap.Timestamp.Format("2006-01-02 15:04:05"),
			orDash(snap.SeedSource),
			snap.Ticks,
			snap.Metrics["entropy"],
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	meta, err := store.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(meta)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	field := chaos.NewField(newRNG(cfg))
	source, err := seedField(field, args)
	if err != nil {
		return err
	}

	mets := metrics.Defaults()
	history := make([]float64, 0, statTicks)
	for i := 0; i < statTicks; i++ {
		field.Step()
		for _, m := range mets {
			m.Observe(field.Grid())
		}
		for _, m := range mets {
			if m.Name() == "entropy" {
				history = append(history, m.Value())
			}
		}
	}

	if source != "" {
		fmt.Printf("seed: %s (%d bytes)\n", source, field.SeedLen())
	}
	fmt.Printf("ticks: %d\n\n", statTicks)
	for _, m := range mets {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	if len(history) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(history, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("entropy")))
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	field := chaos.NewField(newRNG(cfg))
	start := time.Now()
	for i := 0; i < benchTicks; i++ {
		field.Step()
		field.Render(float64(i) * 0.016)
	}
	elapsed := time.Since(start)

	perTick := elapsed / time.Duration(benchTicks)
	fmt.Printf("%d ticks in %v\n", benchTicks, elapsed)
	fmt.Printf("per tick: %v (%.1f ticks/sec)\n", perTick, float64(time.Second)/float64(perTick))
	return nil
}
