package specs

import "time"

// Generate synthesizes a multi-field time series from keyframe expressions.
//
// Process:
//  1. Build the timeline: floor(minutes*60/interval)+1 samples at fixed interval
//  2. Keyframe mode (any keyframes given): parse each keyframe string, resolve
//     relative/absolute/relational values, interpolate segments, run
//     post-return segments, then layer bounded uniform noise
//  3. Default-pattern mode (no keyframes): emit load-profile-driven spike
//     patterns on the primary field with correlated copies on the others
//  4. Apply masks in order, each consuming the previous mask's output
//
// A malformed keyframe or mask string is logged and skipped; the call still
// succeeds with whatever parsed correctly.
//
// This is the spec-level interface using only primitive types.
// See internal.Generate for the reference implementation.
type Generate func(fields map[string]FieldSpec, config GenerateConfigSpec) (DatasetSpec, error)

// GenerateConfigSpec carries the parameters of one generation call.
type GenerateConfigSpec struct {
	// Duration of the generated series in minutes.
	Minutes float64 `json:"minutes"`

	// Seconds between consecutive samples. Must be positive.
	IntervalSeconds float64 `json:"interval_seconds"`

	// Keyframe expressions in either surface syntax (compact
	// "<shorthand><value>@<time>" form or "@<time>;<field>..." form).
	//
	// When any keyframes are supplied the generator runs in keyframe mode;
	// otherwise it falls back to the Load profile.
	Keyframes []string `json:"keyframes,omitempty"`

	// Load profile for default-pattern mode: "low", "medium" or "high".
	// Ignored when keyframes are supplied.
	Load string `json:"load,omitempty"`

	// Global noise multiplier applied on top of each field's NoiseAmount.
	NoiseScale float64 `json:"noise_scale"`

	// Mask expressions ("sin(amp=,freq=,phase=,offset=)" or "pow=<exp>")
	// applied to the generated series in order.
	Masks []string `json:"masks,omitempty"`

	// When true, keyframe values and relationships are interpreted as
	// fractions of each field's range rather than raw units. The noise model
	// is unaffected.
	Normalize bool `json:"normalize,omitempty"`

	// Timestamp of the first sample. Zero means now minus the duration.
	StartTime time.Time `json:"start_time,omitempty"`
}
