package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katharostech/benchmark-games/internal/bench"
	"github.com/katharostech/benchmark-games/internal/counter"
	"github.com/katharostech/benchmark-games/internal/game"
	"github.com/katharostech/benchmark-games/internal/orchestrator"
)

var runHeadful bool

// runOpenSampler allows mocking the perf counter setup in tests.
var runOpenSampler = func() (counter.Sampler, error) {
	return counter.Open()
}

var runCmd = &cobra.Command{
	Use:   "run [workload...]",
	Short: "Benchmark workloads and compare against their previous run",
	Long: `Runs each named workload (all of them when none are given) for a fixed
number of frames, sampling hardware counters around every frame. Results are
compared against the previous comparable run, rendered to an SVG report, and
promoted to be the next baseline.

Headful runs present each frame to the terminal with a reduced frame budget;
they are for watching a workload behave, and are never used as baselines.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runHeadful, "headful", false, "Present each frame to the terminal")
	runCmd.Flags().Int("iterations", 0, "Measured frames per workload (overrides config)")
	runCmd.Flags().String("out", "", "Output directory (overrides config)")

	viper.BindPFlag("iterations", runCmd.Flags().Lookup("iterations"))
	viper.BindPFlag("output_dir", runCmd.Flags().Lookup("out"))
}

func runRun(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = game.Names()
	}
	for _, name := range names {
		if _, err := game.New(name); err != nil {
			return err
		}
	}

	// Counters are opened before any workload runs so an unusable perf setup
	// fails the invocation without leaving a half-finished artifact behind.
	sampler, err := runOpenSampler()
	if err != nil {
		return fmt.Errorf("hardware counters: %w", err)
	}
	defer sampler.Close()

	baselines, err := bench.NewBaselineStore(cfg.BaselineDir())
	if err != nil {
		return fmt.Errorf("preparing baseline store: %w", err)
	}

	o := &orchestrator.Orchestrator{
		Config:    cfg,
		Driver:    &bench.Driver{Sampler: sampler, PresentTo: cmd.OutOrStdout()},
		Baselines: baselines,
		Out:       cmd.OutOrStdout(),
	}
	return o.Run(cmd.Context(), names, !runHeadful)
}
