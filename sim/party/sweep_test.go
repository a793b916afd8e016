package party

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/champagne-sim/champagne-sim/sim"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

func sweepConfig(workers int) SweepConfig {
	cfg := SweepConfig{BatchConfig: DefaultBatchConfig(), Workers: workers}
	cfg.Trials = 200
	return cfg
}

func TestSweep_ResultsInInputOrder(t *testing.T) {
	obs := []weather.Observation{mildWeather, osloWeather, tromsoWeather}
	res, err := Sweep(context.Background(), obs, classicGeometry(t), sweepConfig(2))
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i, r := range res {
		assert.Equal(t, obs[i].Location, r.Location)
		assert.Len(t, r.Outcomes, 200)
	}
}

func TestSweep_IndependentOfWorkersAndCompanions(t *testing.T) {
	g := classicGeometry(t)
	all := []weather.Observation{mildWeather, osloWeather, tromsoWeather}

	serial, err := Sweep(context.Background(), all, g, sweepConfig(1))
	require.NoError(t, err)
	parallel, err := Sweep(context.Background(), all, g, sweepConfig(8))
	require.NoError(t, err)
	alone, err := Sweep(context.Background(), []weather.Observation{osloWeather}, g, sweepConfig(1))
	require.NoError(t, err)

	for i := range serial {
		assert.Equal(t, serial[i].Outcomes, parallel[i].Outcomes, serial[i].Location)
	}
	assert.Equal(t, serial[1].Outcomes, alone[0].Outcomes)
}

func TestSweep_UsesLocationStream(t *testing.T) {
	cfg := sweepConfig(1)
	res, err := Sweep(context.Background(), []weather.Observation{mildWeather}, classicGeometry(t), cfg)
	require.NoError(t, err)

	s := newTestSimulator(t)
	src := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemLocation("Mild"))
	want, err := s.RunBatch(mildWeather, cfg.Trials, cfg.Seed, src, cfg.TraceLevel)
	require.NoError(t, err)
	assert.Equal(t, want.Outcomes, res[0].Outcomes)
}

func TestSweep_IncompleteLocations(t *testing.T) {
	brest := weather.Observation{Location: "Brest", Temperature: weather.Float(11.2), Humidity: weather.Float(93)}
	obs := []weather.Observation{brest, osloWeather}

	// WHEN incomplete locations are not skipped, the sweep fails on them
	_, err := Sweep(context.Background(), obs, classicGeometry(t), sweepConfig(2))
	assert.ErrorIs(t, err, weather.ErrMissingData)

	// WHEN they are skipped, only complete locations are simulated
	cfg := sweepConfig(2)
	cfg.SkipIncomplete = true
	res, err := Sweep(context.Background(), obs, classicGeometry(t), cfg)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Oslo", res[0].Location)
}

func TestSweep_SkipIncompleteKeepsRateErrors(t *testing.T) {
	// GIVEN a complete observation with temperature in Kelvin
	kelvin := weather.NewObservation("Reims", 293.15, 50, 1013)
	cfg := sweepConfig(2)
	cfg.SkipIncomplete = true

	// THEN the sweep fails instead of skipping it
	res, err := Sweep(context.Background(), []weather.Observation{osloWeather, kelvin}, classicGeometry(t), cfg)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, weather.ErrRateOverflow)
}

func TestSweep_DuplicateLocationRejected(t *testing.T) {
	_, err := Sweep(context.Background(), []weather.Observation{osloWeather, osloWeather}, classicGeometry(t), sweepConfig(2))
	assert.ErrorContains(t, err, "duplicate location")
}

func TestSweep_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, []weather.Observation{osloWeather}, classicGeometry(t), sweepConfig(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep_Empty(t *testing.T) {
	res, err := Sweep(context.Background(), nil, classicGeometry(t), sweepConfig(1))
	require.NoError(t, err)
	assert.Empty(t, res)
}
