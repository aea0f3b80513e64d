package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/anand-ps/reverie/internal/config"
	"github.com/anand-ps/reverie/internal/engine"
	"github.com/anand-ps/reverie/internal/gesture"
	"github.com/anand-ps/reverie/internal/registry"
	"github.com/anand-ps/reverie/internal/store"
	"github.com/anand-ps/reverie/internal/telemetry"
	"github.com/anand-ps/reverie/internal/tui"
)

var (
	dataDir     string
	configFile  string
	preset      string
	stepRate    float64
	duration    float64
	seed        int64
	sampleEvery float64
	save        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reverie",
		Short: "real-time interactive simulation engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			return tui.Run(registry.New(), cfg, "")
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".reverie", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := loadConfig(name)
			if err != nil {
				return err
			}
			return tui.Run(registry.New(), cfg, name)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "headless run with telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&stepRate, "rate", 0, "fixed steps per second (0 = config value)")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated duration in seconds")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&sampleEvery, "sample", 0.1, "telemetry sample interval (simulated seconds)")
	runCmd.Flags().BoolVar(&save, "save", false, "persist run telemetry under the data directory")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Run: func(cmd *cobra.Command, args []string) {
			reg := registry.New()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\n", name, reg.Info(name))
			}
			w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(dataDir)
			ids, err := st.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, id := range ids {
				meta, err := st.LoadMetadata(id)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%.1fs\t%d samples\n",
					meta.ID, meta.Model, meta.Duration, meta.Samples)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, modelsCmd, presetsCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(model string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}
	if model != "" {
		cfg.Model = model
	}
	if stepRate > 0 {
		cfg.StepRate = stepRate
	}
	cfg.Seed = seed
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	name := args[0]

	cfg, err := loadConfig(name)
	if err != nil {
		return err
	}

	reg := registry.New()
	sim, err := reg.Build(name, cfg)
	if err != nil {
		return err
	}
	eng, err := engine.New(sim, cfg.StepSize())
	if err != nil {
		return err
	}
	family, err := reg.Family(name)
	if err != nil {
		return err
	}

	eng.Reset(cfg.Seed)
	seedScenario(eng, family, cfg)
	log.Info("run started", "model", name, "duration", duration, "step_rate", cfg.StepRate, "seed", cfg.Seed)

	collector := telemetry.NewCollector(sampleEvery)
	const frame = 1.0 / 60
	var last engine.Snapshot
	for eng.Time() < duration {
		last = eng.Tick(frame)
		collector.Observe(last)
	}

	stats := telemetry.Avalanches(last.Avalanches)
	printSummary(name, cfg, eng.Time(), collector, last, stats)

	if save {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(name, cfg.StepRate, eng.Time(), cfg.Seed, collector.Records(), stats)
		if err != nil {
			return err
		}
		log.Info("run saved", "id", id, "dir", dataDir)
	}
	return nil
}

// seedScenario gives headless runs something to measure: the continuous
// models get a central well with three orbitally inserted particles, life
// starts from the seeded soup. The sandpile needs nothing; its configured
// drop rate provides the activity.
func seedScenario(eng *engine.Engine, family gesture.Family, cfg *config.Config) {
	if family != gesture.ContinuousFamily {
		return
	}
	center := engine.Vec2{X: cfg.Width / 2, Y: cfg.Height / 2}
	eng.Apply(engine.AddSource{At: center})
	for _, r := range []float64{0.15, 0.25, 0.35} {
		at := engine.Vec2{X: center.X + r*cfg.Width, Y: center.Y}
		eng.Apply(engine.LaunchParticle{At: at}) // zero drag: orbital insertion
	}
}

func printSummary(name string, cfg *config.Config, elapsed float64,
	collector *telemetry.Collector, last engine.Snapshot, stats telemetry.AvalancheStats) {

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s\n", name)
	fmt.Fprintf(w, "simulated\t%.2fs\n", elapsed)
	fmt.Fprintf(w, "samples\t%d\n", len(collector.Records()))

	var series []float64
	var label string
	if last.Grid != nil && last.Grid.Heights != nil {
		fmt.Fprintf(w, "avalanches\t%d\n", stats.Count)
		fmt.Fprintf(w, "mean size\t%.2f\n", stats.Mean)
		fmt.Fprintf(w, "max size\t%d\n", stats.Max)
		fmt.Fprintf(w, "p90 size\t%.1f\n", stats.P90)
		fmt.Fprintf(w, "grains lost\t%d\n", last.GrainsLost)
		series = collector.Series(func(r telemetry.Record) float64 { return float64(r.PileHeight) })
		label = "total height"
	} else if last.Grid != nil {
		series = collector.Series(func(r telemetry.Record) float64 { return float64(r.Population) })
		if n := len(series); n > 0 {
			fmt.Fprintf(w, "population\t%.0f\n", series[n-1])
		}
		label = "population"
	} else {
		fmt.Fprintf(w, "particles\t%d\n", len(last.Particles))
		fmt.Fprintf(w, "sources\t%d\n", len(last.Sources))
		series = collector.Series(func(r telemetry.Record) float64 { return r.Kinetic })
		label = "kinetic energy"
	}
	w.Flush()

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(label)
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Width(60)))
	}
}
