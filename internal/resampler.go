package internal

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"timesynth/specs"
)

// Resample implements specs.Resample.
//
// Reduces or reshapes a dataset with one of four methods (mean, minmax,
// linear, lttb) and reconstructs a fresh dataset around the result; the
// source dataset is never mutated. An unsupported method/parameter
// combination fails this resample call only.
func Resample(data specs.DatasetSpec, fields map[string]specs.FieldSpec, config specs.ResampleConfigSpec) (specs.DatasetSpec, error) {
	if len(data.Timestamps) == 0 || data.Items == nil {
		return specs.DatasetSpec{}, fmt.Errorf("invalid data structure: missing timestamps or items")
	}
	defaultItem, ok := data.Items["default"]
	if !ok {
		return specs.DatasetSpec{}, fmt.Errorf("invalid data structure: missing default item")
	}

	original := data.SecondsTimestamps
	base := data.Timestamps[0]
	result := specs.DatasetSpec{
		ID:     uuid.NewString(),
		Fields: make(map[string]specs.FieldSeriesSpec, len(fields)),
		Items:  map[string]map[string][]float64{"default": make(map[string][]float64, len(fields))},
	}

	setTimeline := func(seconds []float64) {
		if result.SecondsTimestamps != nil {
			return
		}
		result.SecondsTimestamps = seconds
		result.Timestamps = make([]time.Time, len(seconds))
		for i, s := range seconds {
			result.Timestamps[i] = base.Add(time.Duration(s * float64(time.Second)))
		}
	}

	switch {
	case config.Method == "mean" && config.TargetInterval > 0:
		for name, fieldSpec := range fields {
			values, ok := defaultItem[name]
			if !ok {
				continue
			}
			newTimes, newValues, err := meanResample(original, values, config.TargetInterval)
			if err != nil {
				return specs.DatasetSpec{}, fmt.Errorf("mean resample of %q: %w", name, err)
			}
			setTimeline(newTimes)
			result.Items["default"][name] = newValues
			result.Fields[name] = specs.FieldSeriesSpec{Values: newValues, Config: fieldSpec}
		}

	case config.Method == "minmax" && config.TargetInterval > 0:
		for name, fieldSpec := range fields {
			values, ok := defaultItem[name]
			if !ok {
				continue
			}
			newTimes, minValues, maxValues := minmaxResample(original, values, config.TargetInterval)
			setTimeline(newTimes)

			// Per-bin minima are the canonical series; maxima land in an
			// auxiliary item.
			result.Items["default"][name] = minValues
			result.Fields[name] = specs.FieldSeriesSpec{Values: minValues, Config: fieldSpec}
			if result.Items["max"] == nil {
				result.Items["max"] = make(map[string][]float64, len(fields))
			}
			result.Items["max"][name] = maxValues
		}

	case config.Method == "lttb" && config.TargetPoints > 0:
		for name, fieldSpec := range fields {
			values, ok := defaultItem[name]
			if !ok {
				continue
			}
			newTimes, newValues := lttbResample(original, values, config.TargetPoints)
			setTimeline(newTimes)
			result.Items["default"][name] = newValues
			result.Fields[name] = specs.FieldSeriesSpec{Values: newValues, Config: fieldSpec}
		}

	case config.Method == "linear" && config.TargetInterval > 0:
		if len(original) == 0 {
			return specs.DatasetSpec{}, fmt.Errorf("invalid data structure: empty seconds timestamps")
		}
		var grid []float64
		for t := original[0]; t <= original[len(original)-1]; t += config.TargetInterval {
			grid = append(grid, t)
		}
		setTimeline(grid)
		for name, fieldSpec := range fields {
			values, ok := defaultItem[name]
			if !ok {
				continue
			}
			newValues := linearResample(original, values, grid)
			result.Items["default"][name] = newValues
			result.Fields[name] = specs.FieldSeriesSpec{Values: newValues, Config: fieldSpec}
		}

	default:
		return specs.DatasetSpec{}, fmt.Errorf("invalid resampling method or parameters: %q", config.Method)
	}

	return result, nil
}

// Resample resamples a dataset using this generator's bus and logger for
// lifecycle reporting.
func (g *Generator) Resample(data specs.DatasetSpec, config specs.ResampleConfigSpec) (specs.DatasetSpec, error) {
	result, err := Resample(data, g.registry.ToSpecs(), config)
	if err != nil {
		return specs.DatasetSpec{}, err
	}
	g.logger.Debug("dataset resampled", "id", result.ID, "method", config.Method, "points", len(result.SecondsTimestamps))
	g.publish(DatasetResampledEvent{DatasetID: result.ID, Method: config.Method, Points: len(result.SecondsTimestamps)})
	return result, nil
}

// meanResample bins samples into consecutive windows of interval seconds
// starting at the first timestamp; each bin emits the arithmetic mean of its
// members. Gaps advance the bin start by whole multiples of the interval.
// Bin sums accumulate in exact decimals so long bins do not drift.
func meanResample(timestamps, values []float64, interval float64) ([]float64, []float64, error) {
	if len(timestamps) == 0 || len(values) == 0 {
		return []float64{}, []float64{}, nil
	}

	var resultTimes, resultValues []float64

	binStart := timestamps[0]
	binSum := NewDecimalFromInt64(0)
	binCount := 0

	flush := func() error {
		if binCount == 0 {
			return nil
		}
		mean, err := binSum.Div(NewDecimalFromInt64(int64(binCount))).Float64()
		if err != nil {
			return err
		}
		resultTimes = append(resultTimes, binStart)
		resultValues = append(resultValues, mean)
		return nil
	}

	for i := range timestamps {
		t, v := timestamps[i], values[i]
		if t < binStart+interval {
			d, err := NewDecimalFromFloat64(v)
			if err != nil {
				return nil, nil, err
			}
			binSum = binSum.Add(d)
			binCount++
			continue
		}

		if err := flush(); err != nil {
			return nil, nil, err
		}

		binStart += interval
		for t >= binStart+interval {
			binStart += interval
		}

		d, err := NewDecimalFromFloat64(v)
		if err != nil {
			return nil, nil, err
		}
		binSum = d
		binCount = 1
	}

	if err := flush(); err != nil {
		return nil, nil, err
	}
	return resultTimes, resultValues, nil
}

// minmaxResample uses the same binning strategy as meanResample but emits
// both the minimum and maximum of each bin.
func minmaxResample(timestamps, values []float64, interval float64) ([]float64, []float64, []float64) {
	if len(timestamps) == 0 || len(values) == 0 {
		return []float64{}, []float64{}, []float64{}
	}

	var resultTimes, resultMin, resultMax []float64

	binStart := timestamps[0]
	binMin := math.Inf(1)
	binMax := math.Inf(-1)
	binCount := 0

	flush := func() {
		if binCount == 0 {
			return
		}
		resultTimes = append(resultTimes, binStart)
		resultMin = append(resultMin, binMin)
		resultMax = append(resultMax, binMax)
	}

	for i := range timestamps {
		t, v := timestamps[i], values[i]
		if t < binStart+interval {
			binMin = math.Min(binMin, v)
			binMax = math.Max(binMax, v)
			binCount++
			continue
		}

		flush()

		binStart += interval
		for t >= binStart+interval {
			binStart += interval
		}

		binMin, binMax, binCount = v, v, 1
	}

	flush()
	return resultTimes, resultMin, resultMax
}

// linearResample evaluates the series at each target timestamp by linear
// interpolation between the two bracketing original samples. Targets before
// the first sample clamp to the first value; targets after the last clamp to
// the last.
func linearResample(timestamps, values, targets []float64) []float64 {
	if len(timestamps) == 0 || len(values) == 0 || len(targets) == 0 {
		return []float64{}
	}

	result := make([]float64, 0, len(targets))
	for _, target := range targets {
		switch {
		case target <= timestamps[0]:
			result = append(result, values[0])
		case target >= timestamps[len(timestamps)-1]:
			result = append(result, values[len(values)-1])
		default:
			rightIdx := 0
			for i, t := range timestamps {
				if t >= target {
					rightIdx = i
					break
				}
			}
			leftIdx := rightIdx - 1

			tLeft, tRight := timestamps[leftIdx], timestamps[rightIdx]
			vLeft, vRight := values[leftIdx], values[rightIdx]

			factor := 0.0
			if tRight > tLeft {
				factor = (target - tLeft) / (tRight - tLeft)
			}
			result = append(result, vLeft+factor*(vRight-vLeft))
		}
	}
	return result
}

// lttbResample is classic Largest-Triangle-Three-Buckets downsampling: keep
// the first and last points, split the rest into targetPoints-2 buckets, and
// from each bucket pick the point forming the largest triangle with the
// previously selected point and the centroid of the next bucket. Input with
// at most targetPoints samples is returned unchanged.
func lttbResample(timestamps, values []float64, targetPoints int) ([]float64, []float64) {
	if len(timestamps) <= targetPoints {
		return timestamps, values
	}

	resultTimes := []float64{timestamps[0]}
	resultValues := []float64{values[0]}

	bucketSize := float64(len(timestamps)-2) / float64(targetPoints-2)

	for i := 1; i < targetPoints-1; i++ {
		bucketStart := int(float64(i-1)*bucketSize) + 1
		bucketEnd := int(float64(i)*bucketSize) + 1
		if bucketStart >= len(timestamps) || bucketEnd >= len(timestamps) {
			break
		}

		nextStart := int(float64(i)*bucketSize) + 1
		nextEnd := int(float64(i+1)*bucketSize) + 1
		if nextEnd > len(timestamps) {
			nextEnd = len(timestamps)
		}

		var nextAvgX, nextAvgY float64
		for j := nextStart; j < nextEnd; j++ {
			nextAvgX += timestamps[j]
			nextAvgY += values[j]
		}
		nextAvgX /= float64(nextEnd - nextStart)
		nextAvgY /= float64(nextEnd - nextStart)

		prevX := resultTimes[len(resultTimes)-1]
		prevY := resultValues[len(resultValues)-1]

		maxArea := -1.0
		maxIdx := bucketStart
		for j := bucketStart; j < bucketEnd; j++ {
			area := math.Abs((prevX-nextAvgX)*(values[j]-prevY)-(prevX-timestamps[j])*(nextAvgY-prevY)) * 0.5
			if area > maxArea {
				maxArea = area
				maxIdx = j
			}
		}

		resultTimes = append(resultTimes, timestamps[maxIdx])
		resultValues = append(resultValues, values[maxIdx])
	}

	resultTimes = append(resultTimes, timestamps[len(timestamps)-1])
	resultValues = append(resultValues, values[len(values)-1])
	return resultTimes, resultValues
}
