package specs

import "time"

// DatasetSpec is the output contract of the generation engine.
//
// Downstream serializers ("raw" and "structured" formats), plotters and the
// resampler all rely on this exact shape; changing it is a breaking change.
// A dataset is single-owner: it is created by one generation call, optionally
// transformed by masks and resampling (each transform returns a new dataset),
// then consumed by output formatters. No concurrent mutation is expected.
type DatasetSpec struct {
	// Unique identifier for this generation run.
	//
	// Lets collaborators that hold several datasets (batch runners, viewers)
	// key them without inspecting contents.
	ID string `json:"id"`

	// Wall-clock timestamp of every sample, in sample order.
	Timestamps []time.Time `json:"timestamps"`

	// Seconds-from-start of every sample. Parallel to Timestamps and always
	// the same length.
	SecondsTimestamps []float64 `json:"seconds_timestamps"`

	// Per-field series plus the registry snapshot used to produce them.
	//
	// Every field present in the registry at generation time has an entry,
	// and all value arrays share one length:
	// floor(duration_seconds/interval_seconds) + 1.
	Fields map[string]FieldSeriesSpec `json:"fields"`

	// Named series collections sharing the dataset's timeline, keyed by item
	// name then field name. Generation always produces the "default" item;
	// minmax resampling adds a "max" item holding per-bin maxima.
	Items map[string]map[string][]float64 `json:"items"`
}

// FieldSeriesSpec pairs one field's generated samples with the field
// definition that produced them.
type FieldSeriesSpec struct {
	// Generated samples, clamped to [Config.Min, Config.Max].
	Values []float64 `json:"values"`

	// Snapshot of the field definition used for this generation call.
	Config FieldSpec `json:"config"`
}
