package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/galaxsph/internal/config"
	"github.com/san-kum/galaxsph/internal/evolve"
	"github.com/san-kum/galaxsph/internal/export"
	"github.com/san-kum/galaxsph/internal/galaxy"
	"github.com/san-kum/galaxsph/internal/metrics"
	"github.com/san-kum/galaxsph/internal/storage"
	"github.com/san-kum/galaxsph/internal/stream"
	"github.com/san-kum/galaxsph/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	n        int
	dt       float64
	duration float64
	seed     int64
	alpha    float64
	beta     float64
	kCond    float64
	etaEff   float64
	temp     float64
	spin     float64
	starForm bool
	noVisc   bool

	metricName string
	outPath    string
	frameIdx   int
	frameRate  int
	addr       string
	every      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "galaxsph",
		Short: "SPH galaxy simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".galaxsph", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a metric history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "energy", "metric to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], outPath)
		},
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "-", "output path (- for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "snapshot.svg", "output path")
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "snapshot index (-1 for last)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run and stream snapshots over websocket",
		RunE:  runServe,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&every, "every", 5, "broadcast every n-th step")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time a short run",
		RunE:  benchRun,
	}
	addRunFlags(benchCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, liveCmd, serveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&n, "n", 1000, "number of particles")
	cmd.Flags().Float64Var(&dt, "dt", 0.5, "timestep [Myr]")
	cmd.Flags().Float64Var(&duration, "time", 100, "duration [Myr]")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&alpha, "alpha", 1.0, "viscosity alpha")
	cmd.Flags().Float64Var(&beta, "beta", 2.0, "viscosity beta")
	cmd.Flags().Float64Var(&kCond, "k-cond", 0, "conduction coefficient")
	cmd.Flags().Float64Var(&etaEff, "eta-eff", 0.01, "star formation efficiency")
	cmd.Flags().Float64Var(&temp, "temp", 1e4, "initial gas temperature [K]")
	cmd.Flags().Float64Var(&spin, "spin", 0.4, "rotation as fraction of v_circ")
	cmd.Flags().BoolVar(&starForm, "star-formation", false, "enable star formation")
	cmd.Flags().BoolVar(&noVisc, "no-viscosity", false, "disable artificial viscosity")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file, then changed CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = n
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("alpha") {
		cfg.Phys.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Phys.Beta = beta
	}
	if flags.Changed("k-cond") {
		cfg.Phys.KCond = kCond
	}
	if flags.Changed("eta-eff") {
		cfg.Phys.EtaEff = etaEff
	}
	if flags.Changed("temp") {
		cfg.IC.Temp = temp
	}
	if flags.Changed("spin") {
		cfg.IC.Spin = spin
	}
	if flags.Changed("star-formation") {
		cfg.Phys.StarFormation = starForm
	}
	if flags.Changed("no-viscosity") {
		cfg.Phys.Viscosity = !noVisc
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config) *evolve.Simulator {
	ar := galaxy.Generate(cfg.InitCond(), cfg.Params(), cfg.Seed)
	sim := evolve.New(ar, cfg.Params())
	sim.Estimator().HEta = cfg.Phys.HEta
	sim.AddMetric(metrics.NewTotalEnergy())
	sim.AddMetric(metrics.NewEnergyDrift())
	sim.AddMetric(metrics.NewMomentum())
	sim.AddMetric(metrics.NewStarMass())
	return sim
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := buildSimulator(cfg)

	fmt.Printf("running %d particles for %.1f Myr...\n", cfg.N, cfg.Duration)
	start := time.Now()

	result, err := sim.Run(context.Background(), cfg.EvolveConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tSTEPS\tSTAR MASS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4g\n",
			run.ID, run.Timestamp.Format(time.RFC3339), run.Config.N,
			run.StepsTaken, run.Metrics["star_mass"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, series, err := storage.New(dataDir).LoadHistory(args[0])
	if err != nil {
		return err
	}
	values, ok := series[metricName]
	if !ok || len(values) < 2 {
		return fmt.Errorf("no history for metric %q", metricName)
	}

	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(15), asciigraph.Width(75),
		asciigraph.Caption(metricName)))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	snaps, err := storage.New(dataDir).LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no snapshots", args[0])
	}

	idx := frameIdx
	if idx < 0 || idx >= len(snaps) {
		idx = len(snaps) - 1
	}
	svg := export.SnapshotToSVG(snaps[idx], 800)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (snapshot %d, t=%.4g)\n", outPath, snaps[idx].Step, snaps[idx].Time)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sim := buildSimulator(cfg)
	return viz.Run(sim, cfg.EvolveConfig().Dt, frameRate)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sim := buildSimulator(cfg)
	srv := stream.NewServer(every)
	sim.AddObserver(srv)

	go func() {
		if _, err := sim.Run(context.Background(), cfg.EvolveConfig()); err != nil {
			fmt.Fprintln(os.Stderr, "simulation stopped:", err)
		}
	}()

	fmt.Printf("streaming on ws://%s/ws\n", addr)
	return srv.ListenAndServe(addr)
}

func benchRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.SnapshotEvery = 0

	sim := buildSimulator(cfg)
	evCfg := cfg.EvolveConfig()

	start := time.Now()
	result, err := sim.Run(context.Background(), evCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	perStep := elapsed / time.Duration(max(result.StepsTaken, 1))
	fmt.Printf("%d particles, %d steps in %v (%v/step)\n", cfg.N, result.StepsTaken, elapsed, perStep)
	return nil
}
