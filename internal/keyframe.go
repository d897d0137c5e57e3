package internal

// ValueKind tags the variants of a keyframe value expression.
type ValueKind int

const (
	// ValueNone marks a default-setting keyframe that carries no value.
	ValueNone ValueKind = iota
	// ValueAbsolute is a concrete target, already in raw units (or, under
	// normalize mode, a fraction of the field's range).
	ValueAbsolute
	// ValueRelative applies an operator to the field's current value and is
	// resolved at generation time.
	ValueRelative
)

// Value is a keyframe value expression: absolute, relative, or absent.
// Modeled as a tagged variant rather than an interface hierarchy.
type Value struct {
	kind    ValueKind
	abs     float64
	op      byte
	operand float64
}

func AbsoluteValue(v float64) Value {
	return Value{kind: ValueAbsolute, abs: v}
}

func RelativeValue(op byte, operand float64) Value {
	return Value{kind: ValueRelative, op: op, operand: operand}
}

func NoValue() Value { return Value{kind: ValueNone} }

func (v Value) Kind() ValueKind { return v.kind }

// Absolute returns the concrete target of a ValueAbsolute.
func (v Value) Absolute() float64 { return v.abs }

// Relative returns the operator and operand of a ValueRelative.
func (v Value) Relative() (byte, float64) { return v.op, v.operand }

// ValueOp is an operator+operand pair applied to some reference value, used
// for post-return modifiers ("^+10") and relationships.
type ValueOp struct {
	Op      byte
	Operand float64
}

// Relationship links one field's keyframe to another field at the same
// instant: the related field receives a keyframe whose value is the resolving
// field's value transformed by Op and Operand.
type Relationship struct {
	Field   string
	Op      byte
	Operand float64
}

// KeyframeOptions carries the per-keyframe modifiers recorded by the parsers.
// Zero values mean "not set".
type KeyframeOptions struct {
	// Interpolation policy for the segment ending at this keyframe
	// ("smooth", "step", "pulse", "sin", "pow", "linear").
	MovementType string

	// Exponent for pow movement. 0 means unset (default 2.0 at use).
	Pow float64

	// Per-field noise override (the "n=" parameter).
	Noise *float64

	// "return" when the keyframe should interpolate back after reaching its
	// target (the ^ marker).
	PostBehavior string

	// How the return value is computed from the pre-keyframe value. Nil
	// means return exactly to the pre-keyframe value.
	PostValue *ValueOp

	// At-sign grammar extras: complex spike form "^peak,return:duration".
	SpikePeak   *float64
	ReturnValue *float64

	// Raw duration (":5s") and hold ("_2s") suffixes from the at-sign
	// grammar, recorded for downstream interpretation.
	Duration string
	Hold     string
}

// IsZero reports whether no option was recorded.
func (o KeyframeOptions) IsZero() bool {
	return o.MovementType == "" && o.Pow == 0 && o.Noise == nil &&
		o.PostBehavior == "" && o.PostValue == nil &&
		o.SpikePeak == nil && o.ReturnValue == nil &&
		o.Duration == "" && o.Hold == ""
}

// Keyframe is the parsed, transient form of one keyframe expression.
type Keyframe struct {
	// Seconds from the start of the timeline. Nil marks a default-setting
	// keyframe that only updates field options (e.g. "a~").
	Time *float64

	// Resolved field name (never empty on a successful parse).
	Field string

	// Target value; ValueNone for default-setting keyframes.
	Value Value

	Options KeyframeOptions

	// Same-instant links to other fields, applied in order, one pass.
	Relationships []Relationship
}
