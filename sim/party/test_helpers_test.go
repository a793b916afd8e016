package party

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/weather"
)

// scriptedSource replays fixed draws and fails the test if a draw is not scripted.
type scriptedSource struct {
	t        *testing.T
	poissons []int
	normals  []float64
}

func (s *scriptedSource) Uniform() float64 {
	s.t.Fatal("unexpected Uniform draw")
	return 0
}

func (s *scriptedSource) Normal(mean, stddev float64) float64 {
	if len(s.normals) == 0 {
		s.t.Fatalf("unexpected Normal(%v, %v) draw: script exhausted", mean, stddev)
	}
	v := s.normals[0]
	s.normals = s.normals[1:]
	return v
}

func (s *scriptedSource) Poisson(lambda float64) int {
	if len(s.poissons) == 0 {
		s.t.Fatalf("unexpected Poisson(%v) draw: script exhausted", lambda)
	}
	v := s.poissons[0]
	s.poissons = s.poissons[1:]
	return v
}

func (s *scriptedSource) drained() bool {
	return len(s.poissons) == 0 && len(s.normals) == 0
}

// classicGeometry is the reference glass: foot to 2 cm, stem to 4, bowl at 10,
// rim at 16.
func classicGeometry(t *testing.T) glass.Geometry {
	t.Helper()
	g, err := glass.NewGeometry(2, 4, 10, 16, 3, 1, 4, 3.5)
	require.NoError(t, err)
	return g
}

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	s, err := NewSimulator(classicGeometry(t), DefaultParams())
	require.NoError(t, err)
	return s
}

// Weather with small, known guest rates keeps batches fast.
var (
	osloWeather   = weather.NewObservation("Oslo", 0, 50, 1000)      // λ = 1
	mildWeather   = weather.NewObservation("Mild", 4, 60, 1010)      // λ ≈ 5.5
	tromsoWeather = weather.NewObservation("Tromso", -4.5, 86, 998) // λ ≈ 0.036
)
