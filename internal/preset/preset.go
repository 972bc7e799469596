// Package preset holds the named shortcuts an operator can fire with
// "!name" at the console.  A Table is fixed once built; every stored
// frame has already passed frame.Validate.
package preset

import (
	"fmt"
	"sort"

	"ptzcon/internal/errors"
	"ptzcon/internal/frame"
)

// Preset is a single named frame.
type Preset struct {
	Name  string `yaml:"name"`
	Frame string `yaml:"frame"`
	Note  string `yaml:"note,omitempty"`
}

// Table maps preset names to canonical frames.  The zero value is an
// empty table.  A Table is never mutated after construction, so it is
// safe to share.
type Table struct {
	order  []string
	byName map[string]Preset
}

// Builtin returns the presets shipped with the console.
func Builtin() []Preset {
	return []Preset{
		{Name: "zoom0", Frame: "8101044700000000FF", Note: "zoom level 0 (min)"},
		{Name: "zoom1", Frame: "8101044700000100FF", Note: "zoom level 1"},
		{Name: "zoom_max", Frame: "8101044701000000FF", Note: "zoom max"},
		{Name: "icr_on", Frame: "8101040102FF", Note: "ICR on"},
		{Name: "icr_off", Frame: "8101040103FF", Note: "ICR off"},
		{Name: "ir_on", Frame: "8101041101FF", Note: "IR correction on"},
		{Name: "ir_off", Frame: "8101041100FF", Note: "IR correction off"},
		{Name: "init", Frame: "8101044700000000FF", Note: "initialise camera"},
	}
}

// Default returns a Table built from Builtin.
func Default() *Table {
	t, err := New(Builtin())
	if err != nil {
		panic(fmt.Sprintf("preset: builtin table is invalid: %v", err))
	}
	return t
}

// New builds a Table from presets.  A later entry with the same name
// replaces an earlier one but keeps the earlier display position.
// A preset whose frame does not validate, or validates to nothing, is a
// configuration defect and fails the whole table.
func New(presets []Preset) (*Table, error) {
	t := &Table{byName: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset with frame %q has no name", p.Frame)
		}
		canonical, err := frame.Validate(p.Frame)
		if err != nil {
			return nil, &errors.PresetError{Name: p.Name, Err: err}
		}
		if canonical == "" {
			return nil, &errors.PresetError{Name: p.Name, Err: errors.Malformed(p.Frame, -1, "frame has no bytes")}
		}
		p.Frame = canonical
		if _, dup := t.byName[p.Name]; !dup {
			t.order = append(t.order, p.Name)
		}
		t.byName[p.Name] = p
	}
	return t, nil
}

// Merge returns a new Table holding t's presets overlaid with extra.
func (t *Table) Merge(extra []Preset) (*Table, error) {
	return New(append(t.List(), extra...))
}

// Resolve returns the frame stored under name.  Lookup is exact and
// case-sensitive.
func (t *Table) Resolve(name string) (string, error) {
	if t != nil {
		if p, ok := t.byName[name]; ok {
			return p.Frame, nil
		}
	}
	return "", errors.NotFound(name)
}

// List returns the presets in display order.
func (t *Table) List() []Preset {
	if t == nil {
		return nil
	}
	out := make([]Preset, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Names returns the preset names sorted alphabetically.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := append([]string(nil), t.order...)
	sort.Strings(names)
	return names
}

// Len returns the number of presets.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}
