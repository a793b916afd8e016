package glass

import "math"

// Ease is the smooth 0→1 transition S(z) = 0.5 - 0.5·cos(πz).
// Intended for z in [0, 1] but defined for every real z.
func Ease(z float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*z)
}

// Radius returns the glass radius at height t.
//
// The stem-to-bowl blend eases linearly in S; the bowl-to-rim taper eases in S²,
// which keeps the rim flare flatter near the bowl.
func (g Geometry) Radius(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t < g.X1:
		return g.RFoot
	case t < g.X2:
		return g.RStem
	case t < g.X3:
		s := Ease((t - g.X2) / (g.X3 - g.X2))
		return g.RStem*(1-s) + g.RBowl*s
	case t <= g.X4:
		s := Ease((t - g.X3) / (g.X4 - g.X3))
		s2 := s * s
		return g.RBowl*(1-s2) + g.RRim*s2
	default:
		return 0
	}
}

// Radii evaluates Radius for each height in ts, preserving order.
func (g Geometry) Radii(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = g.Radius(t)
	}
	return out
}
