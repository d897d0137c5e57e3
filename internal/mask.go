package internal

import (
	"math"
	"strconv"
	"strings"
)

// sinMaskParams are the defaults for unspecified sin(...) parameters.
type sinMaskParams struct {
	amp    float64
	freq   float64
	phase  float64
	offset float64
}

// ApplyMask applies one mask expression to every field's samples in place.
//
// Two grammars:
//
//	sin(amp=,freq=,phase=,offset=)  multiplies every sample by
//	                                amp*sin(2*pi*freq*t + phase) + offset
//	pow=<exponent>                  normalizes each sample into the field's
//	                                range, raises it to the exponent, and
//	                                denormalizes back
//
// Masks apply in the order given; each consumes the previous mask's output.
func ApplyMask(values map[string][]float64, mask string, secondsTimestamps []float64, registry FieldRegistry) error {
	mask = strings.TrimSpace(mask)

	switch {
	case strings.HasPrefix(mask, "sin(") && strings.HasSuffix(mask, ")"):
		params, err := parseSinMask(mask)
		if err != nil {
			return err
		}
		for _, series := range values {
			for i := range series {
				t := secondsTimestamps[i]
				series[i] *= params.amp*math.Sin(2*math.Pi*params.freq*t+params.phase) + params.offset
			}
		}
		return nil

	case strings.HasPrefix(mask, "pow="):
		power, err := strconv.ParseFloat(strings.TrimPrefix(mask, "pow="), 64)
		if err != nil {
			return newParseError(mask, "invalid pow mask exponent")
		}
		for name, series := range values {
			field, ok := registry.Field(name)
			if !ok {
				continue
			}
			applyPowMask(series, power, field.Min(), field.Max())
		}
		return nil

	default:
		return newParseError(mask, "unrecognized mask expression")
	}
}

func parseSinMask(mask string) (sinMaskParams, error) {
	params := sinMaskParams{amp: 0.3, freq: 0.01, phase: 0.0, offset: 1.0}

	inner := strings.TrimSuffix(strings.TrimPrefix(mask, "sin("), ")")
	for _, param := range strings.Split(inner, ",") {
		param = strings.TrimSpace(param)
		if param == "" || !strings.Contains(param, "=") {
			continue
		}
		kv := strings.SplitN(param, "=", 2)
		key := strings.TrimSpace(kv[0])
		value, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return sinMaskParams{}, newParseError(mask, "invalid sin mask parameter %q", param)
		}
		switch key {
		case "amp":
			params.amp = value
		case "freq":
			params.freq = value
		case "phase":
			params.phase = value
		case "offset":
			params.offset = value
		}
	}
	return params, nil
}

// applyPowMask reshapes samples through (normalized)^power. A degenerate
// range (max <= min) treats the normalized value as 0 to avoid division by
// zero.
func applyPowMask(series []float64, power, fieldMin, fieldMax float64) {
	rng := fieldMax - fieldMin
	for i := range series {
		normalized := 0.0
		if rng > 0 {
			normalized = (series[i] - fieldMin) / rng
		}
		normalized = math.Max(0.0, math.Min(1.0, normalized))
		series[i] = fieldMin + math.Pow(normalized, power)*rng
	}
}
