package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/champagne-sim/champagne-sim/internal/fileio"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

var (
	flattenIn  string // Raw weather dump
	flattenOut string // Flattened table
)

// weatherCmd groups weather data tooling
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Weather data tools",
}

// flattenCmd converts a raw provider dump into the flattened weather table
var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Flatten a raw weather dump into a city,temperature,humidity,pressure table",
	Run: func(cmd *cobra.Command, args []string) {
		n, err := flattenWeather(flattenIn, flattenOut)
		if err != nil {
			logrus.Fatalf("flatten failed: %v", err)
		}
		logrus.Infof("wrote %d locations to %s", n, flattenOut)
	},
}

// flattenWeather reads observations from in and writes them as a table to out.
// Returns the number of locations written.
func flattenWeather(in, out string) (n int, err error) {
	obs, err := weather.LoadFile(in)
	if err != nil {
		return 0, err
	}
	w, err := fileio.Create(out)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := weather.WriteTable(w, obs); err != nil {
		return 0, err
	}
	return len(obs), nil
}

func init() {
	flattenCmd.Flags().StringVar(&flattenIn, "in", "", "Raw weather dump (.json, optionally .zst)")
	flattenCmd.Flags().StringVar(&flattenOut, "out", fileio.Stdio, "Flattened table (.csv, optionally .zst; \"-\" for stdout)")
	_ = flattenCmd.MarkFlagRequired("in")

	weatherCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(weatherCmd)
}
