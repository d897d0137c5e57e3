package specs

// Resample reduces or reshapes a generated dataset.
//
// Methods:
//   - "mean": bin samples into windows of TargetInterval seconds; each bin's
//     value is the arithmetic mean of its members
//   - "minmax": same binning; per-bin minima become the default item, maxima
//     are stored in an auxiliary "max" item
//   - "linear": regenerate a uniform grid at TargetInterval and linearly
//     interpolate between the bracketing original samples
//   - "lttb": Largest-Triangle-Three-Buckets downsampling to TargetPoints,
//     always keeping the first and last original points
//
// An unsupported method/parameter combination fails that resample call with
// an error; it never panics.
//
// This is the spec-level interface using only primitive types.
// See internal.Resample for the reference implementation.
type Resample func(data DatasetSpec, fields map[string]FieldSpec, config ResampleConfigSpec) (DatasetSpec, error)

// ResampleConfigSpec selects a resampling method and its parameter.
type ResampleConfigSpec struct {
	// Resampling method: "mean", "minmax", "linear" or "lttb".
	Method string `json:"method"`

	// Target bin/grid width in seconds. Required by mean, minmax and linear.
	TargetInterval float64 `json:"target_interval,omitempty"`

	// Target number of output points. Required by lttb.
	TargetPoints int `json:"target_points,omitempty"`
}
