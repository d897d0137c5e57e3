package internal

import "timesynth/internal/infra"

// KeyframeRejectedEvent is published when a keyframe string fails to parse.
// Generation continues with the keyframes that parsed correctly.
type KeyframeRejectedEvent struct {
	Keyframe string
	Err      error
}

func (e KeyframeRejectedEvent) EventType() infra.EventType { return infra.KeyframeRejected }

// MaskRejectedEvent is published when a mask string fails to parse.
type MaskRejectedEvent struct {
	Mask string
	Err  error
}

func (e MaskRejectedEvent) EventType() infra.EventType { return infra.MaskRejected }

// PatternEmittedEvent is published for each spike pattern laid down in
// default-pattern mode.
type PatternEmittedEvent struct {
	Field      string
	StartIndex int
	Length     int
	Peak       float64
}

func (e PatternEmittedEvent) EventType() infra.EventType { return infra.PatternEmitted }

// DatasetGeneratedEvent is published once per successful generation call.
type DatasetGeneratedEvent struct {
	DatasetID string
	Points    int
	Fields    int
}

func (e DatasetGeneratedEvent) EventType() infra.EventType { return infra.DatasetGenerated }

// DatasetResampledEvent is published once per successful resample call.
type DatasetResampledEvent struct {
	DatasetID string
	Method    string
	Points    int
}

func (e DatasetResampledEvent) EventType() infra.EventType { return infra.DatasetResampled }
