// Package preset loads named, per-function parameter and loop-cap
// presets from a YAML file, so a host can offer a library of
// known-good debug configurations ("spiralSDF with 12 turns") instead
// of making the user dial in raw values every time.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FunctionPreset is one named configuration for a function: parameter
// overrides keyed by parameter name (resolved against the function's
// own DebugParameterInfo at apply time, not by index, since a preset
// file is meant to outlive any particular line of source) and loop
// iteration caps keyed by loop index.
type FunctionPreset struct {
	Params   map[string]string `yaml:"params"`
	LoopCaps map[int]int       `yaml:"loopCaps"`
}

// Library is a set of presets keyed by name.
type Library map[string]FunctionPreset

type document struct {
	Presets Library `yaml:"presets"`
}

// Load reads and validates a preset library from path.
func Load(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("preset: parse %s: %w", path, err)
	}

	for name, p := range doc.Presets {
		if len(p.Params) == 0 && len(p.LoopCaps) == 0 {
			return nil, fmt.Errorf("preset: %q in %s has neither params nor loopCaps", name, path)
		}
		for loopIdx := range p.LoopCaps {
			if loopIdx < 0 {
				return nil, fmt.Errorf("preset: %q in %s has a negative loop index %d", name, path, loopIdx)
			}
		}
	}

	return doc.Presets, nil
}
