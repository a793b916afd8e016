package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/champagne-sim/champagne-sim/sim/glass"
	"github.com/champagne-sim/champagne-sim/sim/party"
)

// defaultGlassesFile is read when --glasses-file is not given.
const defaultGlassesFile = "glasses.yaml"

// GlassPresets represents the full glasses.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type GlassPresets struct {
	Default string                    `yaml:"default"`
	Glasses map[string]glass.Geometry `yaml:"glasses"`
	Party   party.Params              `yaml:"party"` // fields left out keep their DefaultParams value
}

// builtinPresets is used when the default presets file does not exist.
func builtinPresets() *GlassPresets {
	return &GlassPresets{
		Default: "classic",
		Glasses: map[string]glass.Geometry{
			"classic": {X1: 2, X2: 4, X3: 10, X4: 16, RFoot: 3, RStem: 1, RBowl: 4, RRim: 3.5},
		},
		Party: party.DefaultParams(),
	}
}

// LoadGlassPresets parses a presets file with strict field checking and validates
// every glass and the party section.
func LoadGlassPresets(path string) (*GlassPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glass presets: %w", err)
	}
	p := &GlassPresets{Party: party.DefaultParams()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(p); err != nil {
		return nil, fmt.Errorf("parsing glass presets %s: %w", path, err)
	}
	if len(p.Glasses) == 0 {
		return nil, fmt.Errorf("glass presets %s: no glasses defined", path)
	}
	for _, name := range p.Names() {
		if err := p.Glasses[name].Validate(); err != nil {
			return nil, fmt.Errorf("glass preset %q: %w", name, err)
		}
	}
	if err := p.Party.Validate(); err != nil {
		return nil, fmt.Errorf("glass presets %s: %w", path, err)
	}
	if p.Default != "" {
		if _, ok := p.Glasses[p.Default]; !ok {
			return nil, fmt.Errorf("glass presets %s: default %q is not defined", path, p.Default)
		}
	}
	return p, nil
}

// loadGlassPresetsOrBuiltin falls back to the built-in presets only when path is
// the default file and it does not exist.
func loadGlassPresetsOrBuiltin(path string) (*GlassPresets, error) {
	p, err := LoadGlassPresets(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultGlassesFile {
		logrus.Infof("%s not found, using built-in glass presets", path)
		return builtinPresets(), nil
	}
	return p, err
}

// Names returns the preset names in sorted order.
func (p *GlassPresets) Names() []string {
	names := make([]string, 0, len(p.Glasses))
	for n := range p.Glasses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the named glass, or the default one when name is empty.
func (p *GlassPresets) Resolve(name string) (string, glass.Geometry, error) {
	if name == "" {
		name = p.Default
	}
	if name == "" {
		if len(p.Glasses) != 1 {
			return "", glass.Geometry{}, fmt.Errorf("no glass selected and no default; choose one of: %s", strings.Join(p.Names(), ", "))
		}
		name = p.Names()[0]
	}
	g, ok := p.Glasses[name]
	if !ok {
		return "", glass.Geometry{}, fmt.Errorf("unknown glass %q; choose one of: %s", name, strings.Join(p.Names(), ", "))
	}
	return name, g, nil
}
