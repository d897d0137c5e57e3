package internal

import (
	"regexp"
	"strconv"
	"strings"
)

// The two keyframe grammars share one dispatch contract: strings starting
// with '@' use the at-sign grammar, everything else the compact grammar.
// Selection is a plain leading-character check over two parse functions, not
// a type hierarchy.

// ParseKeyframe parses one keyframe expression into its components. A nil
// Keyframe.Time signals a default-setting keyframe (e.g. "a~" changes alpha's
// default movement type without placing a point on the timeline).
func ParseKeyframe(registry FieldRegistry, text string, totalSeconds float64) (Keyframe, error) {
	if strings.HasPrefix(text, "@") {
		return parseAtSign(registry, text, totalSeconds)
	}
	return parseCompact(registry, text, totalSeconds)
}

// postModifierRe finds a post-return modifier like "^+10" or "^-5.5".
var postModifierRe = regexp.MustCompile(`\^([+\-*/])(\d+(\.\d+)?)`)

// relationshipRe matches an inline relationship expression like "c*0.75".
var relationshipRe = regexp.MustCompile(`^([a-zA-Z])([*+\-/^])([\d.]+)`)

// transitionSymbols maps the compact grammar's transition characters to
// movement types. '^' is reserved for post-behavior "return".
var transitionSymbols = []struct {
	symbol   string
	movement string
}{
	{"~", "smooth"},
	{"|", "step"},
	{"#", "pulse"},
}

// parseCompact handles the <shorthand><value><modifiers>@<time><transition>
// form:
//
//	a60@30s           alpha to 60 at 30s
//	a^2@.5            alpha to current^2 at half the timeline
//	a+10@20s~         alpha +10 at 20s, smooth transition
//	a~                set alpha's default transition to smooth
//	a50@55s^          pulse to 50 at 55s, then return to the previous value
//	a50@55s^+10       pulse, then return to previous+10
//	a50@45s(pow=2, n=0.5)  pow interpolation, noise override
//	amin@.8(b*0.75)   alpha to min at 80%, beta set to 75% of that value
func parseCompact(registry FieldRegistry, text string, totalSeconds float64) (Keyframe, error) {
	if text == "" {
		return Keyframe{}, newParseError(text, "empty keyframe string")
	}

	field, ok := registry.ByShorthand(text[0])
	if !ok {
		return Keyframe{}, newParseError(text, "keyframe must start with a valid shorthand: %s",
			strings.Join(registry.Shorthands(), ", "))
	}

	expr := text[1:]
	var options KeyframeOptions
	var relationships []Relationship

	// Parenthesized parameter list holds named options and inline
	// relationship expressions.
	if strings.Contains(expr, "(") && strings.HasSuffix(expr, ")") {
		parts := strings.SplitN(expr, "(", 2)
		expr = parts[0]
		params := strings.TrimSuffix(parts[1], ")")
		parseCompactParams(registry, params, &options, &relationships)
	}

	// '^' anywhere in the expression marks post-behavior "return", optionally
	// with a modifier saying how the return value derives from the
	// pre-keyframe value.
	var behaviorSymbols []string
	if strings.Contains(expr, "^") {
		options.PostBehavior = "return"
		behaviorSymbols = append(behaviorSymbols, "^")

		if m := postModifierRe.FindStringSubmatch(expr); m != nil {
			operand, _ := strconv.ParseFloat(m[2], 64)
			options.PostValue = &ValueOp{Op: m[1][0], Operand: operand}
			expr = strings.Replace(expr, m[0], "^", 1)
		}
	}

	for _, t := range transitionSymbols {
		if strings.Contains(expr, t.symbol) {
			options.MovementType = t.movement
			behaviorSymbols = append(behaviorSymbols, t.symbol)
		}
	}

	// Strip behavior symbols from the time side of the expression only; a
	// symbol inside the value part (e.g. the '^' of "a^2@.5") still belongs
	// to the value.
	for _, symbol := range behaviorSymbols {
		expr = strings.ReplaceAll(expr, "@"+symbol, "@")
		segments := strings.Split(expr, "@")
		if len(segments) > 1 {
			for i := 1; i < len(segments); i++ {
				segments[i] = strings.ReplaceAll(segments[i], symbol, "")
			}
			expr = strings.Join(segments, "@")
		}
	}

	// No '@' means a default-setting keyframe: options only, no timeline
	// point.
	if !strings.Contains(expr, "@") {
		return Keyframe{
			Time:          nil,
			Field:         field.Name(),
			Value:         NoValue(),
			Options:       options,
			Relationships: relationships,
		}, nil
	}

	parts := strings.SplitN(expr, "@", 2)
	value, err := parseCompactValue(field, parts[0])
	if err != nil {
		return Keyframe{}, err
	}
	timeVal, err := ResolveTime(parts[1], totalSeconds)
	if err != nil {
		return Keyframe{}, err
	}

	return Keyframe{
		Time:          &timeVal,
		Field:         field.Name(),
		Value:         value,
		Options:       options,
		Relationships: relationships,
	}, nil
}

// parseCompactParams interprets the comma-separated parameter list. Named
// options: "pow=<exp>" (pow movement with exponent), "sin" (sine movement),
// "n=<amount>" (noise override). Anything matching <shorthand><op><number> is
// an inline relationship; unknown shorthands are ignored.
func parseCompactParams(registry FieldRegistry, params string, options *KeyframeOptions, relationships *[]Relationship) {
	for _, param := range strings.Split(params, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		if strings.Contains(param, "=") {
			kv := strings.SplitN(param, "=", 2)
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])

			switch key {
			case "pow":
				options.MovementType = "pow"
				if exp, err := strconv.ParseFloat(value, 64); err == nil {
					options.Pow = exp
				}
			case "sin":
				options.MovementType = "sin"
			case "n":
				if noise, err := strconv.ParseFloat(value, 64); err == nil {
					options.Noise = &noise
				}
			}
			continue
		}

		if m := relationshipRe.FindStringSubmatch(param); m != nil {
			if related, ok := registry.ByShorthand(m[1][0]); ok {
				operand, _ := strconv.ParseFloat(m[3], 64)
				*relationships = append(*relationships, Relationship{
					Field:   related.Name(),
					Op:      m[2][0],
					Operand: operand,
				})
			}
			continue
		}

		if strings.EqualFold(param, "sin") {
			options.MovementType = "sin"
		}
	}
}

// parseCompactValue parses the value token: min/max sentinel, relative
// operator+operand, numeric literal, or a small arithmetic expression.
func parseCompactValue(field Field, token string) (Value, error) {
	switch token {
	case "min":
		return AbsoluteValue(field.Min()), nil
	case "max":
		return AbsoluteValue(field.Max()), nil
	}

	if token != "" && strings.ContainsAny(token[:1], "+-*/^") {
		operand, err := strconv.ParseFloat(token[1:], 64)
		if err != nil {
			return Value{}, newParseError(token, "invalid relative value operand")
		}
		return RelativeValue(token[0], operand), nil
	}

	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return AbsoluteValue(v), nil
	}

	v, err := EvalExpression(token)
	if err != nil {
		return Value{}, newParseError(token, "invalid value expression: %v", err)
	}
	return AbsoluteValue(v), nil
}
