package internal

import (
	"fmt"
	"os"
	"sort"
	"timesynth/specs"

	"gopkg.in/yaml.v3"
)

// Field is the validated domain form of a specs.FieldSpec.
type Field struct {
	name         string
	shorthand    byte
	min          float64
	max          float64
	mean         float64
	movementType string
	noiseAmount  float64
	color        string
	dataType     string
}

func NewField(name string, spec specs.FieldSpec) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(spec.Shorthand) != 1 {
		return Field{}, fmt.Errorf("field %q: shorthand must be a single character, got %q", name, spec.Shorthand)
	}
	if spec.Min > spec.Max {
		return Field{}, fmt.Errorf("field %q: min %v exceeds max %v", name, spec.Min, spec.Max)
	}

	movementType := spec.MovementType
	if movementType == "" {
		movementType = "linear"
	}
	noiseAmount := spec.NoiseAmount
	if noiseAmount == 0 {
		noiseAmount = 1.0
	}

	return Field{
		name:         name,
		shorthand:    spec.Shorthand[0],
		min:          spec.Min,
		max:          spec.Max,
		mean:         spec.Mean,
		movementType: movementType,
		noiseAmount:  noiseAmount,
		color:        spec.Color,
		dataType:     spec.DataType,
	}, nil
}

func (f Field) Name() string         { return f.name }
func (f Field) Shorthand() byte      { return f.shorthand }
func (f Field) Min() float64         { return f.min }
func (f Field) Max() float64         { return f.max }
func (f Field) Mean() float64        { return f.mean }
func (f Field) MovementType() string { return f.movementType }
func (f Field) NoiseAmount() float64 { return f.noiseAmount }
func (f Field) Color() string        { return f.color }

// Range returns max - min.
func (f Field) Range() float64 { return f.max - f.min }

// Clamp restricts v to the field's [min, max] range.
func (f Field) Clamp(v float64) float64 {
	if v < f.min {
		return f.min
	}
	if v > f.max {
		return f.max
	}
	return v
}

// ToSpec converts the field back to its contract form.
func (f Field) ToSpec() specs.FieldSpec {
	return specs.FieldSpec{
		Shorthand:    string(f.shorthand),
		DataType:     f.dataType,
		Min:          f.min,
		Max:          f.max,
		Mean:         f.mean,
		MovementType: f.movementType,
		NoiseAmount:  f.noiseAmount,
		Color:        f.color,
	}
}

// FieldRegistry holds the validated field definitions for one generation call.
//
// Field order is lexicographic by name; the first field in that order is the
// primary field used by default-pattern mode.
type FieldRegistry struct {
	fields    map[string]Field
	order     []string
	shorthand map[byte]string
}

func NewFieldRegistry(fieldSpecs map[string]specs.FieldSpec) (FieldRegistry, error) {
	if len(fieldSpecs) == 0 {
		return FieldRegistry{}, fmt.Errorf("at least one field is required")
	}

	names := make([]string, 0, len(fieldSpecs))
	for name := range fieldSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]Field, len(fieldSpecs))
	shorthand := make(map[byte]string, len(fieldSpecs))
	for _, name := range names {
		field, err := NewField(name, fieldSpecs[name])
		if err != nil {
			return FieldRegistry{}, err
		}
		if existing, ok := shorthand[field.Shorthand()]; ok {
			return FieldRegistry{}, fmt.Errorf("field %q: shorthand %q already used by field %q",
				name, string(field.Shorthand()), existing)
		}
		fields[name] = field
		shorthand[field.Shorthand()] = name
	}

	return FieldRegistry{fields: fields, order: names, shorthand: shorthand}, nil
}

// Names returns the field names in registry order.
func (r FieldRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r FieldRegistry) Len() int { return len(r.order) }

func (r FieldRegistry) Field(name string) (Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// ByShorthand resolves a shorthand character to its field.
func (r FieldRegistry) ByShorthand(shorthand byte) (Field, bool) {
	name, ok := r.shorthand[shorthand]
	if !ok {
		return Field{}, false
	}
	return r.fields[name], true
}

// Shorthands lists the registered shorthand characters in registry order,
// for error messages.
func (r FieldRegistry) Shorthands() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, string(r.fields[name].Shorthand()))
	}
	return out
}

// Primary returns the first field in registry order.
func (r FieldRegistry) Primary() Field {
	return r.fields[r.order[0]]
}

// ToSpecs snapshots the registry back to its contract form.
func (r FieldRegistry) ToSpecs() map[string]specs.FieldSpec {
	out := make(map[string]specs.FieldSpec, len(r.fields))
	for name, field := range r.fields {
		out[name] = field.ToSpec()
	}
	return out
}

// LoadFieldSpecs reads a field-registry source from a YAML file. The file
// maps field names to their definitions:
//
//	alpha:
//	  shorthand: a
//	  min: 0
//	  max: 100
func LoadFieldSpecs(path string) (map[string]specs.FieldSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field config: %w", err)
	}
	var fieldSpecs map[string]specs.FieldSpec
	if err := yaml.Unmarshal(raw, &fieldSpecs); err != nil {
		return nil, fmt.Errorf("parse field config %s: %w", path, err)
	}
	if len(fieldSpecs) == 0 {
		return nil, fmt.Errorf("field config %s defines no fields", path)
	}
	return fieldSpecs, nil
}

// DefaultFieldSpecs returns the built-in registry source used when no
// configuration file is supplied.
func DefaultFieldSpecs() map[string]specs.FieldSpec {
	return map[string]specs.FieldSpec{
		"alpha": {
			Shorthand:    "a",
			DataType:     "float",
			Min:          0.0,
			Max:          100.0,
			Mean:         20.0,
			Color:        "blue",
			MovementType: "linear",
			NoiseAmount:  0.5,
		},
		"beta": {
			Shorthand:    "b",
			DataType:     "float",
			Min:          0.0,
			Max:          32.0,
			Mean:         8.0,
			Color:        "green",
			MovementType: "linear",
			NoiseAmount:  0.3,
		},
	}
}
