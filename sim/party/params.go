package party

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Params are the behavioural constants of a party. DefaultParams matches the
// reference model; callers override them through the glasses.yaml party section.
type Params struct {
	GlassesPerGuest float64 `yaml:"glasses_per_guest" validate:"gt=0"` // Poisson rate of glasses per guest
	FillMean        float64 `yaml:"fill_mean" validate:"gt=0"`         // mean fill height, same unit as the geometry
	FillStdDev      float64 `yaml:"fill_stddev" validate:"gt=0"`       // fill height standard deviation
	BottleLiters    float64 `yaml:"bottle_liters" validate:"gt=0"`     // volume of one bottle
}

// DefaultParams returns 1.4 glasses per guest, fills of N(14 cm, 0.5 cm) and
// 0.75 L bottles.
func DefaultParams() Params {
	return Params{
		GlassesPerGuest: 1.4,
		FillMean:        14.0,
		FillStdDev:      0.5,
		BottleLiters:    0.75,
	}
}

// Validate checks that every parameter is finite and positive.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"glasses_per_guest", p.GlassesPerGuest},
		{"fill_mean", p.FillMean},
		{"fill_stddev", p.FillStdDev},
		{"bottle_liters", p.BottleLiters},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("party params: %s must be a finite number, got %v", f.name, f.value)
		}
	}
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("party params: %s must be positive, got %v", verrs[0].Field(), verrs[0].Value())
		}
		return fmt.Errorf("party params: %w", err)
	}
	return nil
}
