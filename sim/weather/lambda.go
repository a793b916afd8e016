package weather

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingData is matched by every *MissingDataError.
	ErrMissingData = errors.New("missing weather data")

	// ErrRateOverflow is returned when λ is not a usable Poisson rate: it underflows
	// to 0 or exceeds MaxRate, typically because temperature was supplied in Kelvin.
	ErrRateOverflow = errors.New("expected guest rate out of range")
)

const (
	// MaxRate is the largest expected guest count accepted. Guests are simulated one
	// by one, so a batch at this rate is already far beyond any real party.
	MaxRate = 1e9

	// implausibleRate is the λ above which a warning is logged; the batch still runs.
	implausibleRate = 1e6
)

// MissingDataError identifies the location whose observation lacks a required field.
type MissingDataError struct {
	Location string
	Missing  []string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("cannot compute expected guests: missing %s for %q",
		strings.Join(e.Missing, ", "), e.Location)
}

// Is makes errors.Is(err, ErrMissingData) hold.
func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

// ExpectedLambda maps a weather triple to the Poisson rate of the guest count:
//
//	λ = exp(0.5 + 0.5·T − 3·(H/100) + 0.001·P)
func ExpectedLambda(obs Observation) (float64, error) {
	if missing := obs.missing(); len(missing) > 0 {
		return 0, &MissingDataError{Location: obs.Location, Missing: missing}
	}
	t, h, p := *obs.Temperature, *obs.Humidity/100.0, *obs.Pressure

	lambda := math.Exp(0.5 + 0.5*t - 3.0*h + 0.001*p)
	if !(lambda > 0 && lambda <= MaxRate) {
		return 0, fmt.Errorf("%w: λ=%v for %q (T=%v, H=%v, P=%v)", ErrRateOverflow, lambda, obs.Location, t, *obs.Humidity, p)
	}
	if lambda > implausibleRate {
		logrus.Warnf("expected guest count %.3g for %q is implausibly large; is temperature in °C?", lambda, obs.Location)
	}
	return lambda, nil
}
