package glass

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// legendreNodes is the Gauss-Legendre order used on each smooth piece of the profile.
// Every piece is a trigonometric polynomial of low degree in t, so 32 nodes resolve it
// to round-off.
const legendreNodes = 32

// Integrator computes liquid volumes V(a, b) = π ∫_a^b r(t)² dt for one geometry.
//
// The profile is only C⁰ at the breakpoints, so the interval is always split at every
// breakpoint inside [a, b] and each smooth piece is integrated separately.
// Integrals over whole segments are computed once in NewIntegrator.
//
// An Integrator is immutable after construction and safe for concurrent use.
type Integrator struct {
	geom    Geometry
	knots   [5]float64 // 0, X1, X2, X3, X4
	segment [4]float64 // ∫ r² over [knots[i], knots[i+1]]
}

// NewIntegrator validates g and binds an Integrator to it.
func NewIntegrator(g Geometry) (*Integrator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	in := &Integrator{
		geom:  g,
		knots: [5]float64{0, g.X1, g.X2, g.X3, g.X4},
	}
	for i := range in.segment {
		in.segment[i] = in.integrateSquared(in.knots[i], in.knots[i+1])
	}
	return in, nil
}

// Geometry returns the geometry the integrator is bound to.
func (in *Integrator) Geometry() Geometry {
	return in.geom
}

// Volume returns the capacity between the stem-bowl junction and the rim, V(X2, X4).
func (in *Integrator) Volume() float64 {
	return math.Pi * (in.segment[2] + in.segment[3])
}

// VolumeTo returns V(X2, b): the volume of a glass filled to height b.
func (in *Integrator) VolumeTo(b float64) (float64, error) {
	return in.VolumeBetween(in.geom.X2, b)
}

// VolumeBetween returns V(a, b). b < a fails with ErrInvalidRange; a == b is exactly 0.
// Heights outside [0, X4] contribute nothing because the radius is zero there.
func (in *Integrator) VolumeBetween(a, b float64) (float64, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, fmt.Errorf("%w: bounds must be numbers, got a=%v b=%v", ErrInvalidRange, a, b)
	}
	if b < a {
		return 0, fmt.Errorf("%w: upper limit %v is below lower limit %v", ErrInvalidRange, b, a)
	}
	lo := math.Max(a, in.knots[0])
	hi := math.Min(b, in.knots[4])
	if lo >= hi {
		return 0, nil
	}

	var total float64
	for i := range in.segment {
		segLo, segHi := in.knots[i], in.knots[i+1]
		if segHi <= lo || segLo >= hi {
			continue
		}
		pieceLo := math.Max(segLo, lo)
		pieceHi := math.Min(segHi, hi)
		if pieceLo == segLo && pieceHi == segHi {
			total += in.segment[i]
			continue
		}
		total += in.integrateSquared(pieceLo, pieceHi)
	}
	return math.Pi * total, nil
}

// integrateSquared returns ∫ r(t)² dt over [lo, hi], which must lie within a single
// segment.
func (in *Integrator) integrateSquared(lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return quad.Fixed(in.squaredRadius, lo, hi, legendreNodes, quad.Legendre{}, 0)
}

func (in *Integrator) squaredRadius(t float64) float64 {
	r := in.geom.Radius(t)
	return r * r
}
