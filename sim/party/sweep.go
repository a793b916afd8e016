package party

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/champagne-sim/champagne-sim/sim"
	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

// SweepConfig configures a batch per location.
type SweepConfig struct {
	BatchConfig
	Workers        int  // concurrent batches; <= 0 means one
	SkipIncomplete bool // skip locations with missing weather instead of failing; other errors still fail
}

// Sweep runs one batch per observation. Each location draws from its own stream,
// derived from cfg.Seed and the location name, so a location's result does not
// depend on which other locations are in the sweep or on scheduling. Batches run
// concurrently up to cfg.Workers; each batch itself is sequential.
//
// Results are returned in input order. Skipped locations are omitted.
func Sweep(ctx context.Context, obs []weather.Observation, g glass.Geometry, cfg SweepConfig) ([]*BatchResult, error) {
	s, err := NewSimulator(g, cfg.Params)
	if err != nil {
		return nil, err
	}

	selected := make([]weather.Observation, 0, len(obs))
	seen := make(map[string]bool, len(obs))
	for _, o := range obs {
		if seen[o.Location] {
			return nil, fmt.Errorf("duplicate location %q in sweep", o.Location)
		}
		seen[o.Location] = true
		if _, err := weather.ExpectedLambda(o); err != nil {
			if cfg.SkipIncomplete && errors.Is(err, weather.ErrMissingData) {
				logrus.Warnf("skipping %q: %v", o.Location, err)
				continue
			}
			return nil, err
		}
		selected = append(selected, o)
	}

	// Streams are derived up front on this goroutine; PartitionedRNG is not
	// thread-safe, and each stream is then owned by exactly one batch.
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	streams := make([]*sim.Stream, len(selected))
	for i, o := range selected {
		streams[i] = rng.ForSubsystem(sim.SubsystemLocation(o.Location))
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	results := make([]*BatchResult, len(selected))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i := range selected {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.RunBatch(selected[i], cfg.Trials, cfg.Seed, streams[i], cfg.TraceLevel)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
