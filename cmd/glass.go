package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/champagne-sim/champagne-sim/sim/glass"
)

var (
	profileStep float64 // Height step of the printed radius profile
	fillHeight  float64 // Fill height for the partial volume; 0 skips it
)

// glassCmd prints the radius profile and volumes of a preset
var glassCmd = &cobra.Command{
	Use:   "glass",
	Short: "Show the radius profile and volumes of a glass preset",
	Run: func(cmd *cobra.Command, args []string) {
		presets, err := loadGlassPresetsOrBuiltin(glassesFile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		name, g, err := presets.Resolve(glassName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeGlass(os.Stdout, name, g, profileStep, fillHeight); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeGlass prints the profile of g on a grid of step from 0 to X4, then the
// capacity and, when fill > 0, the volume poured up to fill.
func writeGlass(w io.Writer, name string, g glass.Geometry, step, fill float64) error {
	if !(step > 0) {
		return fmt.Errorf("profile step must be positive, got %v", step)
	}
	in, err := glass.NewIntegrator(g)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== Glass %s ===\n", name)
	fmt.Fprintf(w, "Sections : foot [0, %g], stem [%g, %g], bowl [%g, %g], rim [%g, %g]\n",
		g.X1, g.X1, g.X2, g.X2, g.X3, g.X3, g.X4)
	fmt.Fprintf(w, "%8s %8s\n", "height", "radius")
	n := int(g.X4/step + 1e-9)
	for i := 0; i <= n; i++ {
		t := float64(i) * step
		fmt.Fprintf(w, "%8.3f %8.4f\n", t, g.Radius(t))
	}
	if last := float64(n) * step; last < g.X4 {
		fmt.Fprintf(w, "%8.3f %8.4f\n", g.X4, g.Radius(g.X4))
	}

	fmt.Fprintf(w, "Capacity : %.4f cm³ (stem top to rim)\n", in.Volume())
	if fill > 0 {
		v, err := in.VolumeTo(fill)
		if err != nil {
			return fmt.Errorf("fill height %g: %w", fill, err)
		}
		fmt.Fprintf(w, "Fill %-4g: %.4f cm³\n", fill, v)
	}
	return nil
}

func init() {
	glassCmd.Flags().Float64Var(&profileStep, "step", 1, "Height step of the printed radius profile")
	glassCmd.Flags().Float64Var(&fillHeight, "fill", 0, "Fill height for a partial volume")

	rootCmd.AddCommand(glassCmd)
}
