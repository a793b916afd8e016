package cmd

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/champagne-sim/champagne-sim/internal/fileio"
	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/party"
	"github.com/champagne-sim/champagne-sim/sim/trace"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

// writeTable writes t as CSV to path ("-" for stdout, zstd when path ends in .zst).
func writeTable(path string, t party.Table) (err error) {
	out, err := fileio.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	cw := csv.NewWriter(out)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeReport prints the summary of one batch.
func writeReport(w io.Writer, runID uuid.UUID, obs weather.Observation, r *resolved, res *party.BatchResult, level float64) error {
	lambda, err := weather.ExpectedLambda(obs)
	if err != nil {
		return err
	}
	s := party.Summarize(res.Outcomes)
	need, err := party.BottlesForServiceLevel(res.Outcomes, level)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== Party Summary ===")
	fmt.Fprintf(w, "Run ID             : %s\n", runID)
	fmt.Fprintf(w, "Location           : %s\n", obs.Location)
	fmt.Fprintf(w, "Glass              : %s (%.2f cm³ to the rim)\n", r.GlassName, fullPour(r))
	fmt.Fprintf(w, "Trials             : %d (seed %d)\n", s.Trials, res.Seed)
	fmt.Fprintf(w, "Expected guests    : %.4g\n", lambda)
	fmt.Fprintf(w, "Zero-guest parties : %d\n", s.ZeroGuestTrials)
	fmt.Fprintf(w, "%-8s %10s %10s %8s %8s %8s %8s %8s\n", "", "mean", "stddev", "min", "p50", "p95", "p99", "max")
	writeStats(w, "Guests", s.Guests)
	writeStats(w, "Glasses", s.Glasses)
	writeStats(w, "Liters", s.Liters)
	writeStats(w, "Bottles", s.Bottles)
	fmt.Fprintf(w, "Bottles for %g%% of parties: %d\n", level*100, need)

	if r.Price != nil {
		cost, err := party.EstimateCost(s, *r.Price)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Cost at %s/bottle : mean %s, p95 %s, max %s\n",
			cost.BottlePrice.StringFixed(2), cost.Mean.StringFixed(2), cost.P95.StringFixed(2), cost.Max.StringFixed(2))
	}
	if res.Trace != nil {
		writeTraceSummary(w, trace.Summarize(res.Trace))
	}
	return nil
}

func writeStats(w io.Writer, label string, st party.Stats) {
	fmt.Fprintf(w, "%-8s %10.3f %10.3f %8.2f %8.2f %8.2f %8.2f %8.2f\n",
		label, st.Mean, st.StdDev, st.Min, st.P50, st.P95, st.P99, st.Max)
}

func writeTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trial Trace ===")
	fmt.Fprintf(w, "Traced trials      : %d (%d without guests)\n", ts.TotalTrials, ts.ZeroGuestTrials)
	fmt.Fprintf(w, "Fill draws         : %d (%d rejected, rate %.4f)\n", ts.TotalFillDraws, ts.TotalRejections, ts.RejectionRate)
	if ts.MaxRejectionTrial >= 0 {
		fmt.Fprintf(w, "Most rejections    : %d in trial %d\n", ts.MaxRejections, ts.MaxRejectionTrial)
	}
}

// fullPour is the volume of a glass filled to the rim.
func fullPour(r *resolved) float64 {
	in, err := glass.NewIntegrator(r.Geometry)
	if err != nil {
		return 0
	}
	return in.Volume()
}
