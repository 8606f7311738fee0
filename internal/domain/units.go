package domain

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var unitsYAML []byte

// UnitTable maps unit names to scale factors relative to a base unit.
type UnitTable struct {
	base    string
	names   []string // declaration order, for forms and listings
	factors map[string]float64
}

// Base returns the name of the reference unit (factor 1).
func (t UnitTable) Base() string { return t.base }

// Factor returns the scale factor of unit relative to the base unit.
func (t UnitTable) Factor(unit string) (float64, bool) {
	f, ok := t.factors[unit]
	return f, ok
}

// Units returns the unit names in declaration order.
func (t UnitTable) Units() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

type unitDef struct {
	Name   string  `yaml:"name"`
	Factor float64 `yaml:"factor"`
}

type tableDef struct {
	Base  string    `yaml:"base"`
	Units []unitDef `yaml:"units"`
}

// linearTables holds the length and weight tables. Loaded once, read-only.
var linearTables = mustLoadTables(unitsYAML)

func mustLoadTables(data []byte) map[Category]UnitTable {
	tables, err := loadTables(data)
	if err != nil {
		panic(fmt.Sprintf("domain: load unit tables: %v", err))
	}
	return tables
}

// loadTables parses and validates the YAML unit tables. Every table must
// declare a base unit with factor 1 and only positive, unique factors.
func loadTables(data []byte) (map[Category]UnitTable, error) {
	var defs map[string]tableDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse unit tables: %w", err)
	}
	if len(defs) == 0 {
		return nil, errors.New("no unit tables defined")
	}

	tables := make(map[Category]UnitTable, len(defs))
	for name, def := range defs {
		category := normalizeCategory(Category(name))
		if !category.IsValid() || category == Temperature {
			return nil, fmt.Errorf("table %q: not a linear category", name)
		}
		table, err := buildTable(def)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		tables[category] = table
	}
	return tables, nil
}

func buildTable(def tableDef) (UnitTable, error) {
	t := UnitTable{
		base:    NormalizeUnit(def.Base),
		names:   make([]string, 0, len(def.Units)),
		factors: make(map[string]float64, len(def.Units)),
	}
	if t.base == "" {
		return UnitTable{}, errors.New("base unit is required")
	}
	for _, u := range def.Units {
		name := NormalizeUnit(u.Name)
		if name == "" {
			return UnitTable{}, errors.New("unit name is required")
		}
		if _, dup := t.factors[name]; dup {
			return UnitTable{}, fmt.Errorf("duplicate unit %q", name)
		}
		if u.Factor <= 0 {
			return UnitTable{}, fmt.Errorf("unit %q: factor must be positive", name)
		}
		t.names = append(t.names, name)
		t.factors[name] = u.Factor
	}
	if f, ok := t.factors[t.base]; !ok || f != 1 {
		return UnitTable{}, fmt.Errorf("base unit %q must be listed with factor 1", t.base)
	}
	return t, nil
}

// Table returns the linear unit table for length or weight.
func Table(c Category) (UnitTable, bool) {
	t, ok := linearTables[c]
	return t, ok
}

// UnitsFor lists the units of a category in display order.
func UnitsFor(c Category) ([]string, error) {
	c = normalizeCategory(c)
	switch c {
	case Temperature:
		out := make([]string, len(temperatureUnits))
		copy(out, temperatureUnits)
		return out, nil
	case Length, Weight:
		return linearTables[c].Units(), nil
	default:
		return nil, &ConversionError{Kind: KindUnknownCategory, Input: string(c)}
	}
}
