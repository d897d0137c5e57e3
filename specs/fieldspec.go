package specs

// FieldSpec defines a named numeric channel that the generator can synthesize.
//
// A field is the unit of series generation: every field in the registry
// receives its own dense sample array in each generated dataset. Field specs
// are loaded from a configuration source (YAML file or built-in defaults) and
// handed to the core as a plain map keyed by field name.
type FieldSpec struct {
	// Single-character symbol used to address this field in keyframe
	// expressions (e.g. "a" for "alpha" in "a50@30s").
	//
	// Must be unique across the registry; shorthand collisions are rejected
	// when the registry is constructed.
	Shorthand string `json:"shorthand" yaml:"shorthand"`

	// Declared value type of the field, e.g. "float".
	//
	// Informational passthrough for downstream serializers; the core always
	// generates float64 samples.
	DataType string `json:"data_type,omitempty" yaml:"data_type"`

	// Lower bound of the field's value range.
	//
	// Every generated sample is clamped to [Min, Max] after noise is applied,
	// and the implicit start keyframe of every field sits at Min.
	Min float64 `json:"min" yaml:"min"`

	// Upper bound of the field's value range. Must satisfy Min <= Max.
	Max float64 `json:"max" yaml:"max"`

	// Typical value for the field.
	//
	// Informational only; the core never reads it, but serializers and
	// viewers use it for axis placement.
	Mean float64 `json:"mean,omitempty" yaml:"mean"`

	// Default interpolation policy for segments ending at this field's
	// keyframes: "linear", "smooth", "step", "pulse", "sin", "pow" or "hold".
	//
	// Overridable per keyframe (transition symbols, pow=) or for the whole
	// field by a default-setting keyframe such as "a~". Empty means linear.
	MovementType string `json:"movement_type,omitempty" yaml:"movement_type"`

	// Per-field noise weight. The generator adds uniform noise of
	// +/- (range * 0.01 * NoiseAmount * noiseScale) to every sample.
	NoiseAmount float64 `json:"noise_amount,omitempty" yaml:"noise_amount"`

	// Display color. Passthrough for viewers; not used by core logic.
	Color string `json:"color,omitempty" yaml:"color"`
}
