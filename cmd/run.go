package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/party"
	"github.com/champagne-sim/champagne-sim/sim/trace"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

// batchOptions are the inputs shared by run and sweep.
type batchOptions struct {
	RunID        uuid.UUID
	WeatherFile  string
	GlassesFile  string
	Glass        string
	Trials       int
	Seed         int64
	BottleLiters float64 // 0 keeps the preset's bottle size
	BottlePrice  string
	ServiceLevel float64
	Trace        trace.TraceLevel
}

// runOptions configures executeRun.
type runOptions struct {
	batchOptions
	Location string
	Out      string
}

// resolved is what batchOptions turn into once files are read.
type resolved struct {
	GlassName string
	Geometry  glass.Geometry
	Config    party.BatchConfig
	Price     *decimal.Decimal
}

// resolve loads the glass presets and assembles the batch configuration.
func (o batchOptions) resolve() (*resolved, error) {
	presets, err := loadGlassPresetsOrBuiltin(o.GlassesFile)
	if err != nil {
		return nil, err
	}
	name, g, err := presets.Resolve(o.Glass)
	if err != nil {
		return nil, err
	}
	params := presets.Party
	if o.BottleLiters != 0 {
		params.BottleLiters = o.BottleLiters
	}
	r := &resolved{
		GlassName: name,
		Geometry:  g,
		Config: party.BatchConfig{
			Trials:     o.Trials,
			Seed:       o.Seed,
			Params:     params,
			TraceLevel: o.Trace,
		},
	}
	if o.BottlePrice != "" {
		price, err := decimal.NewFromString(o.BottlePrice)
		if err != nil {
			return nil, fmt.Errorf("invalid bottle price %q: %w", o.BottlePrice, err)
		}
		r.Price = &price
	}
	return r, nil
}

// executeRun simulates one location and reports to w.
func executeRun(w io.Writer, opts runOptions) error {
	log := logrus.WithFields(logrus.Fields{"run_id": opts.RunID.String(), "location": opts.Location, "seed": opts.Seed})

	observations, err := weather.LoadFile(opts.WeatherFile)
	if err != nil {
		return err
	}
	obs, err := weather.Lookup(observations, opts.Location)
	if err != nil {
		return err
	}
	r, err := opts.resolve()
	if err != nil {
		return err
	}

	log.Infof("simulating %d parties at %s with %s glasses, seed %d", r.Config.Trials, obs.Location, r.GlassName, r.Config.Seed)
	res, err := party.RunBatch(obs, r.Geometry, r.Config)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := writeTable(opts.Out, res.Table()); err != nil {
			return err
		}
		log.Infof("wrote %d trials to %s", len(res.Outcomes), opts.Out)
	}
	if err := writeReport(w, opts.RunID, obs, r, res, opts.ServiceLevel); err != nil {
		return err
	}
	log.Info("Simulation complete.")
	return nil
}
