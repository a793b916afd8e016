package weather

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/champagne-sim/champagne-sim/internal/fileio"
)

// ErrUnknownLocation is returned by Lookup when no observation has the location.
var ErrUnknownLocation = errors.New("unknown location")

// TableHeader is the column layout of the flattened weather table.
var TableHeader = []string{"city", "temperature", "humidity", "pressure"}

// rawEntry mirrors one city of the raw provider dump; only "main" is read.
type rawEntry struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
}

// LoadFile reads observations from a raw provider dump (.json) or a flattened
// table (.csv), either optionally zstd-compressed (.zst suffix).
func LoadFile(path string) ([]Observation, error) {
	r, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading weather data: %w", err)
	}
	defer r.Close()

	var obs []Observation
	switch ext := fileio.BaseExt(path); ext {
	case ".json":
		obs, err = DecodeRaw(r)
	case ".csv":
		obs, err = ReadTable(r)
	default:
		return nil, fmt.Errorf("reading weather data: unsupported file type %q (want .json or .csv)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing weather data %s: %w", path, err)
	}
	logrus.Debugf("loaded %d weather observations from %s", len(obs), path)
	return obs, nil
}

// DecodeRaw flattens a raw dump of the form
//
//	{"Paris": {"main": {"temp": 18.2, "humidity": 71, "pressure": 1012}, ...}, "Nowhere": null}
//
// into observations in document order. Null cities and absent fields yield nil
// values. A repeated city keeps its first position and its last value.
func DecodeRaw(r io.Reader) ([]Observation, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	obs := make([]Observation, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		city := tok.(string) // object keys are always strings
		var entry *rawEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("city %q: %w", city, err)
		}
		o := Observation{Location: city}
		if entry != nil && entry.Main != nil {
			o.Temperature = entry.Main.Temp
			o.Humidity = entry.Main.Humidity
			o.Pressure = entry.Main.Pressure
		}
		if i, dup := index[city]; dup {
			obs[i] = o
			continue
		}
		index[city] = len(obs)
		obs = append(obs, o)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return obs, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// ReadTable parses the flattened table written by WriteTable. Empty cells are unknown.
func ReadTable(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(TableHeader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, name := range TableHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("column %d is %q, want %q", i, header[i], name)
		}
	}

	var obs []Observation
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		o := Observation{Location: rec[0]}
		fields := []**float64{&o.Temperature, &o.Humidity, &o.Pressure}
		for i, dst := range fields {
			cell := strings.TrimSpace(rec[i+1])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s %q is not a number", line, TableHeader[i+1], cell)
			}
			*dst = Float(v)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// WriteTable writes observations as a flattened CSV table, one row per location.
func WriteTable(w io.Writer, obs []Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableHeader); err != nil {
		return err
	}
	for _, o := range obs {
		rec := []string{o.Location, formatCell(o.Temperature), formatCell(o.Humidity), formatCell(o.Pressure)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// Lookup returns the observation for location.
func Lookup(obs []Observation, location string) (Observation, error) {
	for _, o := range obs {
		if o.Location == location {
			return o, nil
		}
	}
	return Observation{}, fmt.Errorf("%w %q", ErrUnknownLocation, location)
}
