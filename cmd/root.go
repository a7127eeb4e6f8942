package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/priosim/priosim/sim"
)

var (
	// CLI flags for the simulated topology
	corporateSources int     // Number of corporate-class sources
	premiumSources   int     // Number of premium-class sources
	freeSources      int     // Number of free-class sources
	numDevices       int     // Number of identical processing devices
	maxRequests      int     // Target served-request count
	bufferCapacity   int     // Priority buffer capacity
	serviceMeanMin   float64 // Mean service time per request (minutes)

	seed         int64  // Seed for random stream derivation
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "priosim",
	Short: "Discrete-event simulator for finite-capacity priority queueing networks",
}

// runCmd executes the simulation using parameters from CLI flags or a
// scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if serviceMeanMin <= 0 {
			logrus.Fatalf("service-mean-minutes must be positive, got %f", serviceMeanMin)
		}

		cfg := sim.Config{
			CorporateSources: corporateSources,
			PremiumSources:   premiumSources,
			FreeSources:      freeSources,
			Devices:          numDevices,
			TargetRequests:   maxRequests,
			BufferCapacity:   bufferCapacity,
			ServiceRate:      60.0 / serviceMeanMin,
			Seed:             seed,
		}

		if scenarioPath != "" {
			scenario, err := LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario %s: %v", scenarioPath, err)
			}
			cfg = scenario.Config()
			logrus.Infof("Loaded scenario %q from %s", scenario.Name, scenarioPath)
		}

		if cfg.TargetRequests <= 0 {
			logrus.Fatalf("max-requests must be positive, got %d", cfg.TargetRequests)
		}
		if cfg.CorporateSources+cfg.PremiumSources+cfg.FreeSources == 0 {
			logrus.Fatalf("at least one source is required")
		}

		logrus.Infof("Starting simulation: %d corporate, %d premium, %d free sources; %d devices; target %d requests",
			cfg.CorporateSources, cfg.PremiumSources, cfg.FreeSources, cfg.Devices, cfg.TargetRequests)

		startTime := time.Now() // Get current time (start)

		c := sim.NewController(cfg)
		c.SeedArrivals()
		c.Run()
		c.Metrics.Print(c.Devices())

		logrus.Infof("Simulation complete (%s) in %s wall time.", c.State(), time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&corporateSources, "corporate-sources", 1, "Number of corporate-class sources")
	runCmd.Flags().IntVar(&premiumSources, "premium-sources", 1, "Number of premium-class sources")
	runCmd.Flags().IntVar(&freeSources, "free-sources", 1, "Number of free-class sources")
	runCmd.Flags().IntVar(&numDevices, "devices", 2, "Number of processing devices")
	runCmd.Flags().IntVar(&maxRequests, "max-requests", 100, "Target served-request count")
	runCmd.Flags().IntVar(&bufferCapacity, "buffer-capacity", sim.DefaultBufferCapacity, "Priority buffer capacity")
	runCmd.Flags().Float64Var(&serviceMeanMin, "service-mean-minutes", 40.0, "Mean service time per request (minutes)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random stream derivation")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides topology flags)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
