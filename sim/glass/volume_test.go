package glass

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/champagne-sim/champagne-sim/sim/internal/testutil"
)

func newTestIntegrator(t *testing.T, g Geometry) *Integrator {
	t.Helper()
	in, err := NewIntegrator(g)
	require.NoError(t, err)
	return in
}

func goldenGeometry(t *testing.T, gg testutil.GoldenGlass) Geometry {
	t.Helper()
	g, err := NewGeometry(gg.X1, gg.X2, gg.X3, gg.X4, gg.RFoot, gg.RStem, gg.RBowl, gg.RRim)
	require.NoError(t, err)
	return g
}

func TestVolumeBetween_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Volumes)

	integrators := make(map[string]*Integrator)
	for name, gg := range dataset.Glasses {
		integrators[name] = newTestIntegrator(t, goldenGeometry(t, gg))
	}

	for _, tc := range dataset.Volumes {
		t.Run(tc.Glass+"/"+tc.Description, func(t *testing.T) {
			in, ok := integrators[tc.Glass]
			require.True(t, ok, "unknown glass %q", tc.Glass)
			got, err := in.VolumeBetween(tc.A, tc.B)
			require.NoError(t, err)
			testutil.AssertFloat64Equal(t, "volume_cm3", tc.VolumeCm3, got, 1e-9)
		})
	}
}

func TestVolumeBetween_ZeroWidthIsExactlyZero(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	for _, a := range []float64{-3, 0, 2, 4, 7.25, 10, 16, 40} {
		v, err := in.VolumeBetween(a, a)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v, "a=%v", a)
	}
}

func TestVolumeBetween_InvalidRange(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	_, err := in.VolumeBetween(10, 5)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("VolumeBetween(10, 5) error = %v, want ErrInvalidRange", err)
	}
	_, err = in.VolumeBetween(math.NaN(), 5)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestVolume_DefaultsToStemJunctionAndRim(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	explicit, err := in.VolumeBetween(4, 16)
	require.NoError(t, err)
	testutil.AssertFloat64Equal(t, "Volume()", explicit, in.Volume(), 1e-14)
	testutil.AssertFloat64Equal(t, "closed form", math.Pi*131.66015625, in.Volume(), 1e-12)
}

func TestVolumeTo_UsesStemJunctionAsLowerBound(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	want, err := in.VolumeBetween(4, 14)
	require.NoError(t, err)
	got, err := in.VolumeTo(14)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = in.VolumeTo(3)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestVolumeBetween_Cylinder(t *testing.T) {
	// GIVEN a glass with one radius everywhere above the foot
	g, err := NewGeometry(1, 3, 8, 12, 2, 2.5, 2.5, 2.5)
	require.NoError(t, err)
	in := newTestIntegrator(t, g)

	// THEN any interval inside [X1, X4] is a plain cylinder
	for _, iv := range [][2]float64{{3, 12}, {5.5, 9.25}, {1, 12}, {7.9, 8.1}} {
		got, err := in.VolumeBetween(iv[0], iv[1])
		require.NoError(t, err)
		want := math.Pi * 2.5 * 2.5 * (iv[1] - iv[0])
		testutil.AssertFloat64Equal(t, "cylinder", want, got, 1e-12)
	}
}

func TestVolumeBetween_Additive(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	whole, err := in.VolumeBetween(1, 15)
	require.NoError(t, err)
	sum := 0.0
	cuts := []float64{1, 2.5, 4, 6.3, 10, 12.2, 15}
	for i := 0; i+1 < len(cuts); i++ {
		v, err := in.VolumeBetween(cuts[i], cuts[i+1])
		require.NoError(t, err)
		sum += v
	}
	testutil.AssertFloat64Equal(t, "additivity", whole, sum, 1e-12)
}

func TestVolumeTo_MonotoneInFillHeight(t *testing.T) {
	in := newTestIntegrator(t, classicGeometry(t))
	prev := 0.0
	for b := 4.0; b <= 16; b += 0.25 {
		v, err := in.VolumeTo(b)
		require.NoError(t, err)
		if v < prev {
			t.Fatalf("VolumeTo(%v) = %v < previous %v", b, v, prev)
		}
		prev = v
	}
}

func TestNewIntegrator_RejectsInvalidGeometry(t *testing.T) {
	_, err := NewIntegrator(Geometry{X1: 2, X2: 1, X3: 3, X4: 4})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func BenchmarkVolumeTo(b *testing.B) {
	g, _ := NewGeometry(2, 4, 10, 16, 3, 1, 4, 3.5)
	in, _ := NewIntegrator(g)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = in.VolumeTo(14)
	}
}
