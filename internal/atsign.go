package internal

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingDigitsRe  = regexp.MustCompile(`^(\d+)`)
	smoothAbsRe      = regexp.MustCompile(`~([-+]?\d+)`)
	smoothExprRe     = regexp.MustCompile(`~\?([*/+\-]\d+)`)
	linearDeltaRe    = regexp.MustCompile(`^([-+])(\d+)`)
	complexSpikeRe   = regexp.MustCompile(`\^(\d+),(\d+):(\d+[ms])`)
	postOffsetRe     = regexp.MustCompile(`\^\+(\d+)`)
	holdSuffixRe     = regexp.MustCompile(`_(\d+[ms])`)
	durationSuffixRe = regexp.MustCompile(`:(\d+[ms])`)
)

// parseAtSign handles the @<time>;<field1><op-expr>;... form:
//
//	@20s;a80         alpha to 80 at 20s
//	@20s;a|          step transition, value defaults to the field midpoint
//	@10s;a~60        smooth transition to 60
//	@10s;a~?*50:5s   smooth relative transition over 5s
//	@30s;a-20;b-40   alpha -20 and beta -40 at 30s
//	@30s;a^75,55:5s  spike to 75 returning to 55 over 5s
//
// A leading digit always parses as an absolute value; transition and spike
// markers after it are ignored.
//
// Only the first ;-segment after the time is interpreted into the returned
// keyframe; later segments are discarded. Do not silently extend this:
// callers relying on multi-field keyframes must issue one keyframe per field.
func parseAtSign(registry FieldRegistry, text string, totalSeconds float64) (Keyframe, error) {
	if !strings.HasPrefix(text, "@") {
		return Keyframe{}, newParseError(text, "at-sign keyframe must start with @")
	}

	parts := strings.SplitN(text[1:], ";", 2)
	if len(parts) < 2 {
		return Keyframe{}, newParseError(text, "at-sign keyframe must include a time and at least one channel instruction")
	}

	timeVal, err := ResolveTime(parts[0], totalSeconds)
	if err != nil {
		return Keyframe{}, err
	}

	instruction := strings.SplitN(parts[1], ";", 2)[0]
	if instruction == "" {
		return Keyframe{}, newParseError(text, "empty channel instruction")
	}

	field, ok := registry.ByShorthand(instruction[0])
	if !ok {
		return Keyframe{}, newParseError(text, "channel must start with a valid shorthand: %s",
			strings.Join(registry.Shorthands(), ", "))
	}
	channelExpr := instruction[1:]

	var options KeyframeOptions
	value := NoValue()

	switch {
	// Bare leading digits: absolute value.
	case leadingDigitsRe.MatchString(channelExpr):
		v, _ := strconv.ParseFloat(leadingDigitsRe.FindStringSubmatch(channelExpr)[1], 64)
		value = AbsoluteValue(v)

	// Step transition.
	case strings.Contains(channelExpr, "|"):
		options.MovementType = "step"
		if m := leadingDigitsRe.FindStringSubmatch(channelExpr); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			value = AbsoluteValue(v)
		}

	// Smooth transition, absolute target or "~?" relative expression.
	case strings.Contains(channelExpr, "~"):
		options.MovementType = "smooth"
		if m := smoothAbsRe.FindStringSubmatch(channelExpr); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			value = AbsoluteValue(v)
		} else if m := smoothExprRe.FindStringSubmatch(channelExpr); m != nil {
			operand, _ := strconv.ParseFloat(m[1][1:], 64)
			value = RelativeValue(m[1][0], operand)
		}

	// Leading sign: linear relative delta.
	case linearDeltaRe.MatchString(channelExpr):
		options.MovementType = "linear"
		m := linearDeltaRe.FindStringSubmatch(channelExpr)
		operand, _ := strconv.ParseFloat(m[2], 64)
		value = RelativeValue(m[1][0], operand)

	// Spike: "^peak,return:duration" complex form or simple "^" with an
	// optional "^+n" post-offset.
	case strings.Contains(channelExpr, "^"):
		options.PostBehavior = "return"
		if m := complexSpikeRe.FindStringSubmatch(channelExpr); m != nil {
			peak, _ := strconv.ParseFloat(m[1], 64)
			returnVal, _ := strconv.ParseFloat(m[2], 64)
			options.SpikePeak = &peak
			options.ReturnValue = &returnVal
			options.Duration = m[3]
			if vm := leadingDigitsRe.FindStringSubmatch(channelExpr); vm != nil {
				v, _ := strconv.ParseFloat(vm[1], 64)
				value = AbsoluteValue(v)
			}
		} else {
			if vm := leadingDigitsRe.FindStringSubmatch(channelExpr); vm != nil {
				v, _ := strconv.ParseFloat(vm[1], 64)
				value = AbsoluteValue(v)
			}
			if m := postOffsetRe.FindStringSubmatch(channelExpr); m != nil {
				offset, _ := strconv.ParseFloat(m[1], 64)
				options.PostValue = &ValueOp{Op: '+', Operand: offset}
			}
		}
	}

	if strings.Contains(channelExpr, "_") {
		if m := holdSuffixRe.FindStringSubmatch(channelExpr); m != nil {
			options.Hold = m[1]
		}
	}
	if strings.Contains(channelExpr, ":") {
		if m := durationSuffixRe.FindStringSubmatch(channelExpr); m != nil {
			options.Duration = m[1]
		}
	}

	// No parseable value: fall back to the field's midpoint.
	if value.Kind() == ValueNone {
		value = AbsoluteValue(field.Min() + field.Range()/2)
	}

	return Keyframe{
		Time:          &timeVal,
		Field:         field.Name(),
		Value:         value,
		Options:       options,
		Relationships: nil,
	}, nil
}
