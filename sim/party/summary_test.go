package party

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcomesWithBottles(bottles ...int) []Outcome {
	out := make([]Outcome, len(bottles))
	for i, b := range bottles {
		out[i] = Outcome{Guests: b, TotalGlasses: 2 * b, TotalVolumeLiters: 0.7 * float64(b), TotalVolumeCm3: 700 * float64(b), Bottles: b}
	}
	return out
}

func TestSummarize_KnownValues(t *testing.T) {
	s := Summarize(outcomesWithBottles(4, 0, 2, 1, 3))

	assert.Equal(t, 5, s.Trials)
	assert.Equal(t, 1, s.ZeroGuestTrials)
	assert.Equal(t, 2.0, s.Bottles.Mean)
	assert.InDelta(t, math.Sqrt(2.5), s.Bottles.StdDev, 1e-12)
	assert.Equal(t, 0.0, s.Bottles.Min)
	assert.Equal(t, 4.0, s.Bottles.Max)
	assert.Equal(t, 2.0, s.Bottles.P50)
	assert.Equal(t, 4.0, s.Bottles.P95)
	assert.Equal(t, 4.0, s.Glasses.Mean)
	assert.InDelta(t, 1.4, s.Liters.Mean, 1e-12)
}

func TestSummarize_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize(outcomesWithBottles(3))
	assert.Equal(t, 3.0, one.Bottles.Mean)
	assert.Equal(t, 0.0, one.Bottles.StdDev)
	assert.Equal(t, 3.0, one.Bottles.P99)
}

func TestBottlesForServiceLevel(t *testing.T) {
	out := outcomesWithBottles(4, 0, 2, 1, 3)

	got, err := BottlesForServiceLevel(out, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	got, err = BottlesForServiceLevel(out, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = BottlesForServiceLevel(out, 0)
	assert.Error(t, err)
	_, err = BottlesForServiceLevel(out, 1.5)
	assert.Error(t, err)

	got, err = BottlesForServiceLevel(nil, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestEstimateCost(t *testing.T) {
	s := Summarize(outcomesWithBottles(4, 0, 2, 1, 3))
	price := decimal.RequireFromString("39.90")

	est, err := EstimateCost(s, price)
	require.NoError(t, err)
	assert.Equal(t, "79.80", est.Mean.StringFixed(2))
	assert.Equal(t, "159.60", est.P95.StringFixed(2))
	assert.Equal(t, "159.60", est.Max.StringFixed(2))

	_, err = EstimateCost(s, decimal.RequireFromString("-1"))
	assert.Error(t, err)
}
