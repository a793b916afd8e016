// Package weather holds per-location weather observations, the link function that
// turns them into an expected guest count, and the data source that loads them.
//
// Input contract: Temperature is in °C, Humidity is a 0–100 percent value and
// Pressure is in hPa. Humidity is never reinterpreted as a fraction.
package weather

import (
	"fmt"
	"strings"
)

// Observation is the weather summary for a single location. A nil field means the
// source had no value for it; absence is legitimate data, not an error.
type Observation struct {
	Location    string
	Temperature *float64
	Humidity    *float64
	Pressure    *float64
}

// NewObservation builds a fully populated Observation.
func NewObservation(location string, temperature, humidity, pressure float64) Observation {
	return Observation{
		Location:    location,
		Temperature: Float(temperature),
		Humidity:    Float(humidity),
		Pressure:    Float(pressure),
	}
}

// Float returns a pointer to v, for building partially known observations.
func Float(v float64) *float64 {
	return &v
}

// Complete reports whether temperature, humidity and pressure are all known.
func (o Observation) Complete() bool {
	return len(o.missing()) == 0
}

func (o Observation) missing() []string {
	var names []string
	if o.Temperature == nil {
		names = append(names, "temperature")
	}
	if o.Humidity == nil {
		names = append(names, "humidity")
	}
	if o.Pressure == nil {
		names = append(names, "pressure")
	}
	return names
}

// String renders a human-readable multi-line summary.
func (o Observation) String() string {
	if o.Temperature == nil && o.Humidity == nil && o.Pressure == nil {
		return fmt.Sprintf("No weather data available for %q.", o.Location)
	}
	parts := []string{fmt.Sprintf("Weather for %s:", o.Location)}
	if o.Temperature != nil {
		parts = append(parts, fmt.Sprintf("  Temperature: %.2f", *o.Temperature))
	}
	if o.Humidity != nil {
		parts = append(parts, fmt.Sprintf("  Humidity:    %.0f %%", *o.Humidity))
	}
	if o.Pressure != nil {
		parts = append(parts, fmt.Sprintf("  Pressure:    %.0f hPa", *o.Pressure))
	}
	return strings.Join(parts, "\n")
}
