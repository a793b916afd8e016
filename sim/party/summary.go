package party

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats describes the distribution of one outcome column across a batch.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P90    float64
	P95    float64
	P99    float64
}

// Summary aggregates a batch.
type Summary struct {
	Trials          int
	ZeroGuestTrials int
	Guests          Stats
	Glasses         Stats
	Liters          Stats
	Bottles         Stats
}

// Summarize computes per-column statistics. An empty batch yields zero Stats.
func Summarize(outcomes []Outcome) Summary {
	n := len(outcomes)
	guests := make([]float64, n)
	glasses := make([]float64, n)
	liters := make([]float64, n)
	bottles := make([]float64, n)
	zero := 0
	for i, o := range outcomes {
		guests[i] = float64(o.Guests)
		glasses[i] = float64(o.TotalGlasses)
		liters[i] = o.TotalVolumeLiters
		bottles[i] = float64(o.Bottles)
		if o.Guests == 0 {
			zero++
		}
	}
	return Summary{
		Trials:          n,
		ZeroGuestTrials: zero,
		Guests:          describe(guests),
		Glasses:         describe(glasses),
		Liters:          describe(liters),
		Bottles:         describe(bottles),
	}
}

// describe sorts x in place.
func describe(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}
	sort.Float64s(x)
	mean := stat.Mean(x, nil)
	var sd float64
	if len(x) > 1 {
		sd = stat.StdDev(x, nil)
	}
	return Stats{
		Mean:   mean,
		StdDev: sd,
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		P50:    stat.Quantile(0.50, stat.Empirical, x, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, x, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, x, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, x, nil),
	}
}

// BottlesForServiceLevel returns the smallest bottle count that covers at least the
// fraction level of simulated parties, e.g. 0.95 for "enough at 95% of parties".
func BottlesForServiceLevel(outcomes []Outcome, level float64) (int, error) {
	if !(level > 0 && level <= 1) {
		return 0, fmt.Errorf("service level must be in (0, 1], got %v", level)
	}
	if len(outcomes) == 0 {
		return 0, nil
	}
	b := make([]float64, len(outcomes))
	for i, o := range outcomes {
		b[i] = float64(o.Bottles)
	}
	sort.Float64s(b)
	return int(math.Ceil(stat.Quantile(level, stat.Empirical, b, nil))), nil
}

// CostEstimate prices bottle counts exactly in the currency of the bottle price.
type CostEstimate struct {
	BottlePrice decimal.Decimal
	Mean        decimal.Decimal // mean bottles × price, rounded to cents
	P95         decimal.Decimal // 95th-percentile bottles × price
	Max         decimal.Decimal
}

// EstimateCost prices the bottle statistics of s at price per bottle.
func EstimateCost(s Summary, price decimal.Decimal) (CostEstimate, error) {
	if price.IsNegative() {
		return CostEstimate{}, fmt.Errorf("bottle price must be non-negative, got %s", price)
	}
	return CostEstimate{
		BottlePrice: price,
		Mean:        decimal.NewFromFloat(s.Bottles.Mean).Mul(price).Round(2),
		P95:         decimal.NewFromInt(int64(s.Bottles.P95)).Mul(price).Round(2),
		Max:         decimal.NewFromInt(int64(s.Bottles.Max)).Mul(price).Round(2),
	}, nil
}
