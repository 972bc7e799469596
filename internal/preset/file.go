package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// fileFormat is the on-disk layout of a preset file:
//
//	presets:
//	  - name: home
//	    frame: 81 01 06 04 FF
//	    note: pan/tilt home
type fileFormat struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile reads extra presets from a YAML file.  Entries are validated
// when they are merged into a Table, not here.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f fileFormat
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f.Presets, nil
}

// FromFile returns Default overlaid with the presets in path.
func FromFile(path string) (*Table, error) {
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Default().Merge(extra)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
