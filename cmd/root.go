package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/champagne-sim/champagne-sim/sim/party"
	"github.com/champagne-sim/champagne-sim/sim/trace"
)

var (
	// CLI flags shared by the simulation commands
	logLevel     string  // Log verbosity level
	glassesFile  string  // Path to the glass presets file
	glassName    string  // Glass preset to pour into
	weatherFile  string  // Weather observations (.json raw dump or .csv table, optionally .zst)
	seed         int64   // Master seed
	trials       int     // Parties per batch
	bottleLiters float64 // Bottle size; overrides the preset's party section when set
	bottlePrice  string  // Price per bottle, decimal string; empty disables cost estimation
	serviceLevel float64 // Fraction of parties the bottle recommendation must cover
	traceLevel   string  // Trial trace level

	// run-only flags
	location string // Location to simulate
	outPath  string // Per-trial CSV output, "-" for stdout
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "champagne-sim",
	Short: "Monte Carlo simulator for champagne demand at parties",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env, err := LoadEnvDefaults()
		if err != nil {
			return err
		}
		if err := applyEnvDefaults(cmd, env); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd simulates a batch of parties for one location
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a batch of parties for one location",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions{
			batchOptions: batchOptionsFromFlags(cmd),
			Location:     location,
			Out:          outPath,
		}
		if err := executeRun(os.Stdout, opts); err != nil {
			logrus.Fatalf("run failed: %v", err)
		}
	},
}

// batchOptionsFromFlags collects the flags shared by run and sweep.
func batchOptionsFromFlags(cmd *cobra.Command) batchOptions {
	opts := batchOptions{
		RunID:        uuid.New(),
		WeatherFile:  weatherFile,
		GlassesFile:  glassesFile,
		Glass:        glassName,
		Trials:       trials,
		Seed:         seed,
		BottlePrice:  bottlePrice,
		ServiceLevel: serviceLevel,
		Trace:        trace.TraceLevel(traceLevel),
	}
	if cmd.Flags().Changed("bottle-liters") {
		opts.BottleLiters = bottleLiters
	}
	return opts
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addBatchFlags registers the flags shared by run and sweep.
func addBatchFlags(c *cobra.Command) {
	c.Flags().StringVar(&weatherFile, "weather", "", "Weather observations (.json raw dump or .csv table, optionally .zst)")
	c.Flags().Int64Var(&seed, "seed", party.DefaultSeed, "Master seed")
	c.Flags().IntVar(&trials, "trials", party.DefaultTrials, "Number of simulated parties")
	c.Flags().Float64Var(&bottleLiters, "bottle-liters", party.DefaultParams().BottleLiters, "Bottle size in liters")
	c.Flags().StringVar(&bottlePrice, "bottle-price", "", "Price per bottle for cost estimates, e.g. 39.90")
	c.Flags().Float64Var(&serviceLevel, "service-level", 0.95, "Fraction of parties the bottle recommendation must cover")
	c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trial trace level (none, trials)")
	_ = c.MarkFlagRequired("weather")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&glassesFile, "glasses-file", defaultGlassesFile, "Glass presets file")
	rootCmd.PersistentFlags().StringVar(&glassName, "glass", "", "Glass preset (defaults to the file's default)")

	addBatchFlags(runCmd)
	runCmd.Flags().StringVar(&location, "location", "", "Location to simulate")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write per-trial outcomes as CSV (\"-\" for stdout, .zst to compress)")
	_ = runCmd.MarkFlagRequired("location")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
