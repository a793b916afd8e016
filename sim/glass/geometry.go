// Package glass models the cross-section of a champagne glass: a four-segment
// radius profile r(t) over height t and the disk-method volume of liquid held
// between two heights.
package glass

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidGeometry is returned when breakpoints are not strictly ascending from
	// zero or a radius is negative or non-finite.
	ErrInvalidGeometry = errors.New("invalid glass geometry")

	// ErrInvalidRange is returned when a volume is requested over an interval whose
	// upper bound lies below its lower bound.
	ErrInvalidRange = errors.New("invalid integration range")
)

var validate = validator.New()

// Geometry is the eight-scalar description of a glass design. Heights and radii share
// one length unit (cm in every preset shipped with the CLI).
//
// Regions along t: foot [0, X1), stem [X1, X2), stem-to-bowl blend [X2, X3),
// bowl-to-rim taper [X3, X4].
type Geometry struct {
	X1 float64 `yaml:"x1" validate:"gte=0"`
	X2 float64 `yaml:"x2" validate:"gtfield=X1"`
	X3 float64 `yaml:"x3" validate:"gtfield=X2"`
	X4 float64 `yaml:"x4" validate:"gtfield=X3"`

	RFoot float64 `yaml:"r_foot" validate:"gte=0"`
	RStem float64 `yaml:"r_stem" validate:"gte=0"`
	RBowl float64 `yaml:"r_bowl" validate:"gte=0"`
	RRim  float64 `yaml:"r_rim" validate:"gte=0"`
}

// NewGeometry builds a validated Geometry.
func NewGeometry(x1, x2, x3, x4, rFoot, rStem, rBowl, rRim float64) (Geometry, error) {
	g := Geometry{
		X1: x1, X2: x2, X3: x3, X4: x4,
		RFoot: rFoot, RStem: rStem, RBowl: rBowl, RRim: rRim,
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks 0 <= X1 < X2 < X3 < X4, non-negative radii, and that every field
// is finite.
func (g Geometry) Validate() error {
	for _, f := range g.fields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidGeometry, f.name, f.value)
		}
	}
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%v fails %s%s", ErrInvalidGeometry, fe.Field(), fe.Value(), fe.Tag(), tagParam(fe.Param()))
		}
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	return nil
}

type namedField struct {
	name  string
	value float64
}

func (g Geometry) fields() []namedField {
	return []namedField{
		{"X1", g.X1}, {"X2", g.X2}, {"X3", g.X3}, {"X4", g.X4},
		{"RFoot", g.RFoot}, {"RStem", g.RStem}, {"RBowl", g.RBowl}, {"RRim", g.RRim},
	}
}

func tagParam(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// Breakpoints returns X1..X4 in ascending order.
func (g Geometry) Breakpoints() [4]float64 {
	return [4]float64{g.X1, g.X2, g.X3, g.X4}
}
