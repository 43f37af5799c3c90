package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mdsim/internal/analysis"
	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/export"
	"github.com/san-kum/mdsim/internal/mc"
	"github.com/san-kum/mdsim/internal/optim"
	"github.com/san-kum/mdsim/internal/physics"
	"github.com/san-kum/mdsim/internal/sim"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/sweep"
	"github.com/san-kum/mdsim/internal/system"
	"github.com/san-kum/mdsim/internal/thermostat"
	"github.com/san-kum/mdsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Start configuration
	nPart   int
	rho     float64
	temp    float64
	seed    int64
	inFile  string
	outFile string
	// Run parameters
	configFile string
	preset     string
	blocks     int
	steps      int
	dt         float64
	workers    int
	// Monte Carlo moves
	drMax  float64
	epsBox float64
	tune   bool
	// Trajectory separation
	d0 float64
	// Density scan
	rhoMin float64
	rhoMax float64
	points int
	// Outer steps per frame for live view
	burst int
	// Plot output
	colName string
	svgFile string
	pngFile string
	// Radial distribution
	bins int
	rMax float64
)

// main is the entry point for the mdsim CLI; it registers commands and flags
// and executes the root command. It exits the process with status 1 if
// command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mdsim",
		Short: "molecular dynamics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write a lattice start configuration",
		RunE:  initLattice,
	}
	initCmd.Flags().IntVar(&nPart, "n", 256, "number of particles")
	initCmd.Flags().Float64Var(&rho, "rho", 0.75, "number density")
	initCmd.Flags().Float64Var(&temp, "temperature", config.DefaultTemperature, "initial temperature")
	initCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	initCmd.Flags().StringVar(&outFile, "out", "cnf.inp", "output file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run molecular dynamics",
		RunE:  runMD,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&inFile, "in", "cnf.inp", "start configuration file")
	runCmd.Flags().IntVar(&nPart, "n", 256, "lattice particles when no start file")
	runCmd.Flags().Float64Var(&rho, "rho", 0.75, "lattice density when no start file")
	runCmd.Flags().IntVar(&blocks, "blocks", config.DefaultBlocks, "averaging blocks")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "outer steps per block")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "outer timestep")
	runCmd.Flags().IntVar(&workers, "workers", 1, "force evaluation workers")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	mcCmd := &cobra.Command{
		Use:   "mc",
		Short: "run hard-sphere monte carlo",
		RunE:  runMC,
	}
	mcCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	mcCmd.Flags().StringVar(&inFile, "in", "cnf.inp", "start configuration file")
	mcCmd.Flags().IntVar(&nPart, "n", 256, "lattice particles when no start file")
	mcCmd.Flags().Float64Var(&rho, "rho", 0.75, "lattice density when no start file")
	mcCmd.Flags().IntVar(&blocks, "blocks", config.DefaultMCBlocks, "averaging blocks")
	mcCmd.Flags().IntVar(&steps, "steps", config.DefaultMCSteps, "sweeps per block")
	mcCmd.Flags().Float64Var(&drMax, "dr-max", config.DefaultDrMax, "maximum trial displacement")
	mcCmd.Flags().Float64Var(&epsBox, "eps-box", config.DefaultEpsBox, "pressure box scaling")
	mcCmd.Flags().BoolVar(&tune, "tune", false, "tune dr-max for ~40% acceptance before the run")
	mcCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run molecular dynamics with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().StringVar(&inFile, "in", "cnf.inp", "start configuration file")
	liveCmd.Flags().IntVar(&nPart, "n", 256, "lattice particles when no start file")
	liveCmd.Flags().Float64Var(&rho, "rho", 0.75, "lattice density when no start file")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "outer timestep")
	liveCmd.Flags().IntVar(&workers, "workers", 1, "force evaluation workers")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&burst, "burst", 5, "outer steps per frame")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest lyapunov exponent",
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	lyapunovCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	lyapunovCmd.Flags().StringVar(&inFile, "in", "cnf.inp", "start configuration file")
	lyapunovCmd.Flags().IntVar(&nPart, "n", 256, "lattice particles when no start file")
	lyapunovCmd.Flags().Float64Var(&rho, "rho", 0.75, "lattice density when no start file")
	lyapunovCmd.Flags().IntVar(&steps, "steps", 500, "outer steps")
	lyapunovCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "outer timestep")
	lyapunovCmd.Flags().Float64Var(&d0, "d0", 1e-6, "initial trajectory separation")
	lyapunovCmd.Flags().IntVar(&workers, "workers", 1, "force evaluation workers")
	lyapunovCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	eosCmd := &cobra.Command{
		Use:   "eos",
		Short: "scan densities and tabulate the equation of state",
		RunE:  runEOS,
	}
	eosCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	eosCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	eosCmd.Flags().Float64Var(&rhoMin, "rho-min", 0.2, "lowest density")
	eosCmd.Flags().Float64Var(&rhoMax, "rho-max", 0.75, "highest density")
	eosCmd.Flags().IntVar(&points, "points", 7, "densities to sample")
	eosCmd.Flags().IntVar(&nPart, "n", 256, "particles per point")
	eosCmd.Flags().IntVar(&blocks, "blocks", config.DefaultBlocks, "averaging blocks per point")
	eosCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "outer steps per block")
	eosCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "outer timestep")
	eosCmd.Flags().IntVar(&workers, "workers", 1, "force evaluation workers")
	eosCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&colName, "col", "", "column to export (default: first)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the exported column to an svg file")
	plotCmd.Flags().StringVar(&pngFile, "png", "", "write the exported column to a png file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "correlation analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	rdfCmd := &cobra.Command{
		Use:   "rdf [run_id]",
		Short: "radial distribution function",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRDF,
	}
	rdfCmd.Flags().IntVar(&bins, "bins", 50, "histogram bins")
	rdfCmd.Flags().Float64Var(&rMax, "rmax", 0, "histogram range (default: half box)")
	rdfCmd.Flags().StringVar(&svgFile, "svg", "", "write g(r) to an svg file")
	rdfCmd.Flags().StringVar(&pngFile, "png", "", "write g(r) to a png file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("%-8s cutoffs %v  strides %v  dt %.4f  blocks %d  steps %d\n",
					name, p.Cutoffs, p.Strides, p.Dt, p.Blocks, p.Steps)
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(initCmd, runCmd, mcCmd, liveCmd, lyapunovCmd, eosCmd, plotCmd, analyzeCmd, rdfCmd, presetsCmd, runsCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLattice(cmd *cobra.Command, args []string) error {
	sys, err := system.Lattice(nPart, rho)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(seed))
	sys.Thermalize(temp, rng)

	if err := storage.WriteConfig(outFile, sys.Box, sys.R, sys.V); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outFile)
	fmt.Printf("particles: %d\n", sys.N)
	fmt.Printf("box: %.6f\n", sys.Box)
	fmt.Printf("density: %.6f\n", sys.Density())
	fmt.Printf("temperature: %.6f\n", sys.Temperature())
	return nil
}

// loadRunConfig builds the effective run configuration: defaults, then the
// preset, then the config file, then explicitly set flags on top.
func loadRunConfig(cmd *cobra.Command) (*config.Run, error) {
	cfg := config.DefaultRun()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadRun(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("blocks") {
		cfg.Blocks = blocks
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSystem reads the start configuration file, or falls back to a fresh
// thermalized lattice when the file does not exist. A positions-only file
// gets velocities drawn at the given temperature.
func loadSystem(temperature float64, rng *rand.Rand) (*system.System, error) {
	if _, err := os.Stat(inFile); err == nil {
		box, r, v, err := storage.ReadConfig(inFile)
		if err != nil {
			return nil, err
		}
		if v == nil {
			sys, err := system.FromArrays(box, r, make([]float64, len(r)))
			if err != nil {
				return nil, err
			}
			sys.Thermalize(temperature, rng)
			return sys, nil
		}
		return system.FromArrays(box, r, v)
	}

	sys, err := system.Lattice(nPart, rho)
	if err != nil {
		return nil, err
	}
	sys.Thermalize(temperature, rng)
	return sys, nil
}

func buildIntegrator(cfg *config.Run, sys *system.System) (*sim.Integrator, *physics.Field, error) {
	field, err := physics.NewField(cfg.Cutoffs, cfg.Healing, sys.Box, cfg.Workers)
	if err != nil {
		return nil, nil, err
	}
	mts, err := sim.NewIntegrator(sys, field, cfg.Strides, cfg.Dt)
	if err != nil {
		return nil, nil, err
	}
	return mts, field, nil
}

func runMD(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sys, err := loadSystem(cfg.Equilibration.Temperature, rng)
	if err != nil {
		return err
	}

	mts, field, err := buildIntegrator(cfg, sys)
	if err != nil {
		return err
	}

	var thermo thermostat.Thermostat
	switch cfg.Equilibration.Thermostat {
	case "rescale":
		thermo = thermostat.Rescale{T: cfg.Equilibration.Temperature}
	case "berendsen":
		thermo = thermostat.Berendsen{T: cfg.Equilibration.Temperature, Tau: cfg.Equilibration.Tau, Dt: mts.Span()}
	}

	var tailE, tailP float64
	if cfg.TailCorrection {
		tailE = physics.PotentialTail(sys.Density(), field.Outer())
		tailP = physics.PressureTail(sys.Density(), field.Outer())
	}

	st := storage.New(dataDir)
	run, err := st.Begin("md", []string{"E/N", "T", "P"}, storage.Meta{Particles: sys.N, Box: sys.Box})
	if err != nil {
		return err
	}
	if err := config.SaveRun(filepath.Join(run.Dir(), "params.yaml"), cfg); err != nil {
		return err
	}

	fmt.Printf("running md: %d particles, density %.4f, box %.4f\n", sys.N, sys.Density(), sys.Box)
	fmt.Printf("cutoffs %v, strides %v, dt %.4f\n", cfg.Cutoffs, cfg.Strides, cfg.Dt)
	if cfg.Equilibration.Blocks > 0 {
		fmt.Printf("equilibration: %d blocks, %s thermostat at t %.4f\n",
			cfg.Equilibration.Blocks, cfg.Equilibration.Thermostat, cfg.Equilibration.Temperature)
	}
	fmt.Println()
	fmt.Printf("%-8s  %-12s  %-12s  %-12s\n", "block", "e/n", "t", "p")
	fmt.Println(strings.Repeat("-", 52))

	runner := &sim.Runner{
		Mts:    mts,
		Blocks: cfg.Blocks,
		Steps:  cfg.Steps,
		Equil:  cfg.Equilibration.Blocks,
		Thermo: thermo,
		TailE:  tailE,
		TailP:  tailP,
		Sink:   run,
		OnBlock: func(block int, means []float64) {
			fmt.Printf("%-8d  %12.6f  %12.6f  %12.6f\n", block, means[0], means[1], means[2])
		},
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	if err := run.WriteFinal(mts.System()); err != nil {
		return err
	}
	if err := run.Finish(res.Summary, res.Drift, res.Steps); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", res.Elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("steps: %d\n", res.Steps)
	fmt.Printf("energy drift: %.2e\n", res.Drift)
	fmt.Println("\naverages:")
	for i, name := range res.Summary.Names {
		fmt.Printf("  %s: %.6f ± %.6f\n", name, res.Summary.Mean[i], res.Summary.StdErr[i])
	}

	return nil
}

func runMC(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultMC()
	if configFile != "" {
		loaded, err := config.LoadMC(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("blocks") {
		cfg.Blocks = blocks
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dr-max") {
		cfg.DrMax = drMax
	}
	if cmd.Flags().Changed("eps-box") {
		cfg.EpsBox = epsBox
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var box float64
	var r []float64
	if _, err := os.Stat(inFile); err == nil {
		box, r, _, err = storage.ReadConfig(inFile)
		if err != nil {
			return err
		}
	} else {
		sys, err := system.Lattice(nPart, rho)
		if err != nil {
			return err
		}
		box, r = sys.Box, sys.R
	}

	if tune {
		grid := []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5}
		tuned, ratio, err := optim.TuneDrMax(context.Background(), box, r, cfg.Seed, grid, 50, 0.4)
		if err != nil {
			return err
		}
		fmt.Printf("tuned dr-max: %.3f (acceptance %.3f)\n", tuned, ratio)
		cfg.DrMax = tuned
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sampler, err := mc.NewSampler(box, r, cfg.DrMax, rng)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	run, err := st.Begin("mc", []string{"m-ratio", "P"}, storage.Meta{Particles: sampler.N(), Box: box})
	if err != nil {
		return err
	}
	if err := config.SaveMC(filepath.Join(run.Dir(), "params.yaml"), cfg); err != nil {
		return err
	}

	fmt.Printf("running mc: %d hard spheres, density %.4f, box %.4f\n", sampler.N(), sampler.Density(), box)
	fmt.Printf("dr-max %.4f, eps-box %.4f\n", cfg.DrMax, cfg.EpsBox)
	fmt.Println()
	fmt.Printf("%-8s  %-12s  %-12s\n", "block", "m-ratio", "p")
	fmt.Println(strings.Repeat("-", 38))

	runner := &mc.Runner{
		Sampler: sampler,
		Blocks:  cfg.Blocks,
		Steps:   cfg.Steps,
		EpsBox:  cfg.EpsBox,
		Sink:    run,
		OnBlock: func(block int, means []float64) {
			fmt.Printf("%-8d  %12.6f  %12.6f\n", block, means[0], means[1])
		},
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	if err := run.WriteFinalPositions(box, sampler.Positions()); err != nil {
		return err
	}
	if err := run.Finish(res.Summary, 0, res.Steps); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", res.Elapsed)
	fmt.Printf("run id: %s\n", run.ID())
	fmt.Printf("sweeps: %d\n", res.Steps)
	fmt.Println("\naverages:")
	for i, name := range res.Summary.Names {
		fmt.Printf("  %s: %.6f ± %.6f\n", name, res.Summary.Mean[i], res.Summary.StdErr[i])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sys, err := loadSystem(cfg.Equilibration.Temperature, rng)
	if err != nil {
		return err
	}

	mts, field, err := buildIntegrator(cfg, sys)
	if err != nil {
		return err
	}

	var tailE, tailP float64
	if cfg.TailCorrection {
		tailE = physics.PotentialTail(sys.Density(), field.Outer())
		tailP = physics.PressureTail(sys.Density(), field.Outer())
	}

	m := viz.NewModel(mts, burst, tailE, tailP)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sys, err := loadSystem(cfg.Equilibration.Temperature, rng)
	if err != nil {
		return err
	}

	mts, _, err := buildIntegrator(cfg, sys)
	if err != nil {
		return err
	}

	fmt.Printf("running lyapunov: %d particles, density %.4f, d0 %.2e\n", sys.N, sys.Density(), d0)
	fmt.Printf("cutoffs %v, strides %v, dt %.4f, %d outer steps\n", cfg.Cutoffs, cfg.Strides, cfg.Dt, steps)

	start := time.Now()
	lambda, err := sim.Lyapunov(mts, d0, steps)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	fmt.Printf("largest exponent: %.6f\n", lambda)
	if lambda > 0 {
		fmt.Printf("divergence time: %.4f\n", 1/lambda)
	}
	return nil
}

func runEOS(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	sc := &sweep.Config{
		RhoMin:    rhoMin,
		RhoMax:    rhoMax,
		Points:    points,
		Particles: nPart,
		Run:       cfg,
	}

	fmt.Printf("running eos: %d particles, %d densities in [%.3f, %.3f]\n", nPart, points, rhoMin, rhoMax)
	fmt.Printf("cutoffs %v, strides %v, dt %.4f\n", cfg.Cutoffs, cfg.Strides, cfg.Dt)
	fmt.Println()
	fmt.Printf("%-8s  %-12s  %-12s  %-12s  %-10s\n", "rho", "e/n", "t", "p", "drift")
	fmt.Println(strings.Repeat("-", 62))

	start := time.Now()
	if _, err := sweep.Run(context.Background(), sc, func(p sweep.Point) {
		fmt.Printf("%-8.4f  %12.6f  %12.6f  %12.6f  %.2e\n", p.Rho, p.EN, p.T, p.P, p.Drift)
	}); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	names, rows, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 || len(names) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(rows))

	for c := 1; c < len(names); c++ {
		graph := asciigraph.Plot(column(rows, c),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(names[c]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile == "" && pngFile == "" {
		return nil
	}

	c := 1
	if colName != "" {
		c = -1
		for i := 1; i < len(names); i++ {
			if names[i] == colName {
				c = i
			}
		}
		if c < 0 {
			return fmt.Errorf("unknown column: %s (available: %v)", colName, names[1:])
		}
	}
	xs := column(rows, 0)
	ys := column(rows, c)

	if svgFile != "" {
		if err := export.WriteSVG(svgFile, xs, ys, 800, 400, "#00ff00"); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	if pngFile != "" {
		if err := export.WritePNG(pngFile, names[c], xs, ys, 800, 400); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}

	return nil
}

// column extracts one series column; rows too short contribute a zero.
func column(rows [][]float64, c int) []float64 {
	out := make([]float64, len(rows))
	for i := range rows {
		if c < len(rows[i]) {
			out[i] = rows[i][c]
		}
	}
	return out
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	names, rows, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 || len(names) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("correlation analysis: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(rows))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMEAN\tSTAT.INEFF\tTAU\tN.EFF")
	for c := 1; c < len(names); c++ {
		data := column(rows, c)
		mean := 0.0
		for _, v := range data {
			mean += v
		}
		mean /= float64(len(data))

		s := analysis.StatIneff(data)
		tau := analysis.CorrelationTime(data)
		neff := float64(len(data)) / s

		fmt.Fprintf(w, "%s\t%.6f\t%.2f\t%.2f\t%.0f\n", names[c], mean, s, tau, neff)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	data := column(rows, 1)
	maxLag := len(data) / 4
	if maxLag > 200 {
		maxLag = 200
	}
	acf := analysis.Autocorrelation(data, maxLag)

	fmt.Println()
	graph := asciigraph.Plot(acf,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("autocorrelation (%s)", names[1])),
	)
	fmt.Println(graph)

	return nil
}

func plotRDF(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var frames [][]float64
	box := meta.Box
	for b := 1; b <= meta.Blocks; b++ {
		path := st.ConfigPath(runID, fmt.Sprintf("cnf.%03d", b))
		fb, r, _, err := storage.ReadConfig(path)
		if err != nil {
			continue
		}
		box = fb
		frames = append(frames, r)
	}
	if len(frames) == 0 {
		return fmt.Errorf("no configurations found for %s", runID)
	}

	if rMax <= 0 {
		rMax = box / 2
	}
	r, g, err := analysis.RDF(frames, box, bins, rMax)
	if err != nil {
		return err
	}

	fmt.Printf("rdf: %s\n", meta.ID)
	fmt.Printf("frames: %d, bins: %d, rmax: %.4f\n\n", len(frames), bins, rMax)

	graph := asciigraph.Plot(g,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("g(r)"),
	)
	fmt.Println(graph)
	fmt.Printf("\nr range: %.4f .. %.4f\n", r[0], r[len(r)-1])

	if svgFile != "" {
		if err := export.WriteSVG(svgFile, r, g, 800, 400, "#00ff00"); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	if pngFile != "" {
		if err := export.WritePNG(pngFile, "g(r)", r, g, 800, 400); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}

	return nil
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSTARTED\tN\tBLOCKS\tSTEPS\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2e\n",
			run.ID,
			run.Kind,
			run.Started.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Blocks,
			run.Steps,
			run.Drift,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
