package internal

import "math"

// applyOp applies a relative operator to a value. Division by zero leaves the
// value unchanged: a deliberate saturating policy, not an error.
func applyOp(op byte, current, operand float64) float64 {
	switch op {
	case '+':
		return current + operand
	case '-':
		return current - operand
	case '*':
		return current * operand
	case '/':
		if operand == 0 {
			return current
		}
		return current / operand
	case '^':
		return math.Pow(current, operand)
	default:
		return current
	}
}

// ResolveValue resolves a keyframe value expression against the field's
// current value.
//
// Relative values apply their operator to current; under normalize mode the
// operation runs in the field's [0,1] space (current mapped via
// (v-min)/range, operator applied, result clamped to [0,1], mapped back), so
// the same relative keyframe moves by a fraction of range rather than raw
// units. Absolute values under normalize are themselves fractions of [0,1]
// mapped into range; without normalize they pass through unchanged.
func ResolveValue(field Field, expr Value, current float64, normalize bool) float64 {
	switch expr.Kind() {
	case ValueRelative:
		op, operand := expr.Relative()
		if !normalize {
			return applyOp(op, current, operand)
		}
		rng := field.Range()
		fracCurrent := 0.0
		if rng > 0 {
			fracCurrent = (current - field.Min()) / rng
		}
		fracNew := applyOp(op, fracCurrent, operand)
		fracNew = math.Max(0.0, math.Min(1.0, fracNew))
		return field.Min() + fracNew*rng

	case ValueAbsolute:
		if normalize {
			frac := math.Max(0.0, math.Min(1.0, expr.Absolute()))
			return field.Min() + frac*field.Range()
		}
		return expr.Absolute()

	default:
		return current
	}
}

// resolveRelationship computes the related field's value from the resolving
// field's already-resolved value. In normalize mode the operation runs in
// fractional space (normalized against the resolving field's range, then
// denormalized into the related field's range); either way the result is
// clamped into the related field's range.
func resolveRelationship(resolving, related Field, resolvedValue float64, op byte, operand float64, normalize bool) float64 {
	var newVal float64
	if normalize {
		frac := 0.0
		if resolving.Range() > 0 {
			frac = (resolvedValue - resolving.Min()) / resolving.Range()
		}
		frac = applyOp(op, frac, operand)
		frac = math.Max(0.0, math.Min(1.0, frac))
		newVal = related.Min() + frac*related.Range()
	} else {
		newVal = applyOp(op, resolvedValue, operand)
	}
	return related.Clamp(newVal)
}
