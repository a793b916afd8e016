package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/champagne-sim/champagne-sim/sim/party"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

var (
	outDir         string // Directory for per-location CSV files
	workers        int    // Concurrent location batches
	skipIncomplete bool   // Skip locations with missing weather
)

// sweepOptions configures executeSweep.
type sweepOptions struct {
	batchOptions
	OutDir         string
	Workers        int
	SkipIncomplete bool
}

// sweepCmd simulates every location of a weather file
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate a batch of parties for every location in a weather file",
	Run: func(cmd *cobra.Command, args []string) {
		opts := sweepOptions{
			batchOptions:   batchOptionsFromFlags(cmd),
			OutDir:         outDir,
			Workers:        workers,
			SkipIncomplete: skipIncomplete,
		}
		if err := executeSweep(cmd.Context(), os.Stdout, opts); err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}
	},
}

// executeSweep runs one batch per location and prints one summary line each.
func executeSweep(ctx context.Context, w io.Writer, opts sweepOptions) error {
	log := logrus.WithFields(logrus.Fields{"run_id": opts.RunID.String(), "seed": opts.Seed})

	observations, err := weather.LoadFile(opts.WeatherFile)
	if err != nil {
		return err
	}
	r, err := opts.resolve()
	if err != nil {
		return err
	}
	cfg := party.SweepConfig{
		BatchConfig:    r.Config,
		Workers:        opts.Workers,
		SkipIncomplete: opts.SkipIncomplete,
	}

	log.Infof("sweeping %d locations with %s glasses, %d trials each, seed %d", len(observations), r.GlassName, cfg.Trials, cfg.Seed)
	results, err := party.Sweep(ctx, observations, r.Geometry, cfg)
	if err != nil {
		return err
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		for _, res := range results {
			path := filepath.Join(opts.OutDir, locationFileName(res.Location)+".csv")
			if err := writeTable(path, res.Table()); err != nil {
				return err
			}
		}
		log.Infof("wrote %d location files to %s", len(results), opts.OutDir)
	}

	fmt.Fprintln(w, "=== Sweep Summary ===")
	fmt.Fprintf(w, "Run ID : %s\n", opts.RunID)
	fmt.Fprintf(w, "Glass  : %s, %d trials per location, seed %d\n", r.GlassName, cfg.Trials, cfg.Seed)
	fmt.Fprintf(w, "%-20s %10s %10s %10s %10s\n", "location", "guests", "liters", "bottles", fmt.Sprintf("p%g", opts.ServiceLevel*100))
	for _, res := range results {
		s := party.Summarize(res.Outcomes)
		need, err := party.BottlesForServiceLevel(res.Outcomes, opts.ServiceLevel)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-20s %10.2f %10.2f %10.2f %10d\n", res.Location, s.Guests.Mean, s.Liters.Mean, s.Bottles.Mean, need)
	}
	log.Info("Sweep complete.")
	return nil
}

// locationFileName maps a location to a portable file name.
func locationFileName(loc string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, loc)
	if name == "" {
		return "_"
	}
	return name
}

func init() {
	addBatchFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&outDir, "out-dir", "", "Write one CSV of per-trial outcomes per location into this directory")
	sweepCmd.Flags().IntVar(&workers, "workers", 4, "Locations simulated concurrently")
	sweepCmd.Flags().BoolVar(&skipIncomplete, "skip-incomplete", false, "Skip locations with missing weather instead of failing")

	rootCmd.AddCommand(sweepCmd)
}
