package party

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/champagne-sim/champagne-sim/sim"
	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/trace"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

const (
	// DefaultTrials is the number of parties in a batch when none is given.
	DefaultTrials = 1000
	// DefaultSeed makes batches reproducible when no seed is given.
	DefaultSeed int64 = 123
)

// BatchConfig configures a batch of simulated parties.
type BatchConfig struct {
	Trials     int
	Seed       int64
	Params     Params
	TraceLevel trace.TraceLevel
}

// DefaultBatchConfig returns 1000 trials, seed 123, DefaultParams and no tracing.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Trials:     DefaultTrials,
		Seed:       DefaultSeed,
		Params:     DefaultParams(),
		TraceLevel: trace.TraceLevelNone,
	}
}

// BatchResult holds the outcomes of one batch in trial order.
type BatchResult struct {
	Location string
	Seed     int64
	Outcomes []Outcome
	Trace    *trace.SimulationTrace // nil unless tracing was requested
}

// RunBatch simulates cfg.Trials parties for one location. All trials draw from a
// single stream seeded with cfg.Seed, in order, so the result is a pure function of
// (obs, g, cfg). The first failing trial aborts the batch.
func RunBatch(obs weather.Observation, g glass.Geometry, cfg BatchConfig) (*BatchResult, error) {
	s, err := NewSimulator(g, cfg.Params)
	if err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	return s.RunBatch(obs, cfg.Trials, cfg.Seed, rng.ForSubsystem(sim.SubsystemParty), cfg.TraceLevel)
}

// RunBatch runs trials parties against src. seed is recorded on the result only.
func (s *Simulator) RunBatch(obs weather.Observation, trials int, seed int64, src sim.Source, level trace.TraceLevel) (*BatchResult, error) {
	if trials < 0 {
		return nil, fmt.Errorf("trials must be non-negative, got %d", trials)
	}
	if !trace.IsValidTraceLevel(string(level)) {
		return nil, fmt.Errorf("unknown trace level %q", level)
	}
	logrus.Debugf("batch %q: %d trials, seed %d", obs.Location, trials, seed)

	st := trace.NewSimulationTrace(level)
	outcomes := make([]Outcome, 0, trials)
	for i := 0; i < trials; i++ {
		var rec *trace.TrialRecord
		if st != nil {
			rec = &trace.TrialRecord{Trial: i}
		}
		out, err := s.simulate(obs, src, rec)
		if err != nil {
			return nil, fmt.Errorf("trial %d for %q: %w", i, obs.Location, err)
		}
		outcomes = append(outcomes, out)
		if rec != nil {
			st.RecordTrial(*rec)
		}
	}

	logrus.Debugf("batch %q: done", obs.Location)
	return &BatchResult{
		Location: obs.Location,
		Seed:     seed,
		Outcomes: outcomes,
		Trace:    st,
	}, nil
}

// TableColumns is the column layout of BatchResult.Table.
var TableColumns = []string{"guests", "total_glasses", "total_volume_cm3", "total_volume_L", "bottles"}

// Table is a tabular result set ready for a delimited-text writer.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Table renders one row per trial. Floats use the shortest representation that
// round-trips exactly.
func (r *BatchResult) Table() Table {
	rows := make([][]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		rows[i] = []string{
			strconv.Itoa(o.Guests),
			strconv.Itoa(o.TotalGlasses),
			strconv.FormatFloat(o.TotalVolumeCm3, 'g', -1, 64),
			strconv.FormatFloat(o.TotalVolumeLiters, 'g', -1, 64),
			strconv.Itoa(o.Bottles),
		}
	}
	return Table{Columns: append([]string(nil), TableColumns...), Rows: rows}
}
