package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObservation_String(t *testing.T) {
	full := NewObservation("Reims", 20.456, 50, 1013)
	assert.Equal(t, "Weather for Reims:\n  Temperature: 20.46\n  Humidity:    50 %\n  Pressure:    1013 hPa", full.String())

	partial := Observation{Location: "Brest", Humidity: Float(93)}
	assert.Equal(t, "Weather for Brest:\n  Humidity:    93 %", partial.String())

	empty := Observation{Location: "Nowhere"}
	assert.Equal(t, `No weather data available for "Nowhere".`, empty.String())
}

func TestObservation_Complete(t *testing.T) {
	assert.True(t, NewObservation("Oslo", 0, 50, 1000).Complete())
	assert.False(t, Observation{Location: "Brest", Temperature: Float(11), Humidity: Float(93)}.Complete())
}
