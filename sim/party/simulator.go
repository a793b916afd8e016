// Package party simulates champagne consumption at parties: one party per trial,
// seeded batches of trials for one location, and sweeps over many locations.
package party

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/champagne-sim/champagne-sim/sim"
	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/trace"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

// ErrUnreachableFill is returned when the fill-height distribution puts no
// probability mass on (X2, X4], so rejection sampling could never accept a draw.
var ErrUnreachableFill = errors.New("fill height can never land inside the bowl")

// Outcome is the result of one simulated party. A party without guests has every
// field exactly zero.
type Outcome struct {
	Guests            int
	TotalGlasses      int
	TotalVolumeCm3    float64
	TotalVolumeLiters float64
	Bottles           int
}

// Simulator runs single parties for one glass design. It holds no mutable state;
// all randomness comes from the Source passed to each call.
type Simulator struct {
	volume *glass.Integrator
	params Params
}

// NewSimulator validates the geometry and params and binds a volume integrator.
func NewSimulator(g glass.Geometry, params Params) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	in, err := glass.NewIntegrator(g)
	if err != nil {
		return nil, err
	}
	fill := distuv.Normal{Mu: params.FillMean, Sigma: params.FillStdDev}
	if mass := fill.CDF(g.X4) - fill.CDF(g.X2); !(mass > 0) {
		return nil, fmt.Errorf("%w: N(%v, %v) has no mass on (%v, %v]",
			ErrUnreachableFill, params.FillMean, params.FillStdDev, g.X2, g.X4)
	}
	return &Simulator{volume: in, params: params}, nil
}

// Params returns the simulator's params.
func (s *Simulator) Params() Params {
	return s.params
}

// Geometry returns the glass geometry the simulator pours into.
func (s *Simulator) Geometry() glass.Geometry {
	return s.volume.Geometry()
}

// Simulate runs one party for the given weather, drawing every random value from src.
// Fails only when the observation cannot produce an expected guest count.
func (s *Simulator) Simulate(obs weather.Observation, src sim.Source) (Outcome, error) {
	return s.simulate(obs, src, nil)
}

// simulate is Simulate with optional accounting of the sampling work into rec.
func (s *Simulator) simulate(obs weather.Observation, src sim.Source, rec *trace.TrialRecord) (Outcome, error) {
	lambda, err := weather.ExpectedLambda(obs)
	if err != nil {
		return Outcome{}, err
	}
	if rec != nil {
		rec.Lambda = lambda
	}

	guests := src.Poisson(lambda)
	if guests == 0 {
		return Outcome{}, nil
	}

	totalGlasses := 0
	for i := 0; i < guests; i++ {
		totalGlasses += src.Poisson(s.params.GlassesPerGuest)
	}

	var totalCm3 float64
	for i := 0; i < totalGlasses; i++ {
		b, draws := s.sampleFillHeight(src)
		if rec != nil {
			rec.FillDraws += draws
			rec.Rejections += draws - 1
		}
		v, err := s.volume.VolumeTo(b)
		if err != nil {
			// unreachable: b > X2 by construction
			return Outcome{}, err
		}
		totalCm3 += v
	}

	liters := totalCm3 / 1000.0
	if rec != nil {
		rec.Guests = guests
		rec.Glasses = totalGlasses
	}
	return Outcome{
		Guests:            guests,
		TotalGlasses:      totalGlasses,
		TotalVolumeCm3:    totalCm3,
		TotalVolumeLiters: liters,
		Bottles:           BottlesNeeded(liters, s.params.BottleLiters),
	}, nil
}

// sampleFillHeight draws from the fill distribution until the height lies in
// (X2, X4]. Retries without bound; NewSimulator guarantees a positive acceptance
// probability. Returns the accepted height and the number of draws made.
func (s *Simulator) sampleFillHeight(src sim.Source) (float64, int) {
	g := s.volume.Geometry()
	for draws := 1; ; draws++ {
		b := src.Normal(s.params.FillMean, s.params.FillStdDev)
		if b > g.X2 && b <= g.X4 {
			return b, draws
		}
	}
}

// BottlesNeeded returns ceil(liters / bottleLiters), or 0 when nothing was poured.
func BottlesNeeded(liters, bottleLiters float64) int {
	if liters <= 0 {
		return 0
	}
	return int(math.Ceil(liters / bottleLiters))
}
