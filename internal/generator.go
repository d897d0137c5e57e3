package internal

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"timesynth/internal/infra"
	"timesynth/specs"
)

// loadProfile drives default-pattern mode: how often spike patterns fire, how
// long pauses between them run, and how close to a field's max the peaks sit.
type loadProfile struct {
	frequency float64
	minPause  float64 // seconds
	maxPause  float64 // seconds
	intensity float64
}

var loadProfiles = map[string]loadProfile{
	"low":    {frequency: 0.3, minPause: 60, maxPause: 120, intensity: 0.4},
	"medium": {frequency: 0.6, minPause: 20, maxPause: 60, intensity: 0.7},
	"high":   {frequency: 1.0, minPause: 5, maxPause: 20, intensity: 0.9},
}

// Spike shape in default-pattern mode, independent of load.
const (
	patternRiseSeconds = 30.0
	patternHoldSeconds = 120.0
	patternFallSeconds = 60.0
)

// Generator synthesizes multi-field time series from keyframe expressions or
// load-profile patterns. The random source, logger and event bus are
// injectable so tests can run deterministically and observe skip decisions.
//
// A Generator is not safe for concurrent use; each generation call owns its
// dataset for its whole lifecycle.
type Generator struct {
	registry FieldRegistry
	rng      *rand.Rand
	logger   *slog.Logger
	bus      *infra.Bus
}

type GeneratorOption func(*Generator)

// WithRand injects the random source used for noise, pattern placement and
// correlation factors.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rng = rng }
}

// WithLogger injects the logger used to report skipped keyframes and masks.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = logger }
}

// WithBus injects an event bus that receives generation lifecycle events.
func WithBus(bus *infra.Bus) GeneratorOption {
	return func(g *Generator) { g.bus = bus }
}

func NewGenerator(fieldSpecs map[string]specs.FieldSpec, opts ...GeneratorOption) (*Generator, error) {
	registry, err := NewFieldRegistry(fieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}

	g := &Generator{
		registry: registry,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) Registry() FieldRegistry { return g.registry }

func (g *Generator) publish(e infra.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}

// Generate builds the timeline and fills every field's series, in keyframe
// mode when any keyframe strings are supplied and default-pattern mode
// otherwise, then applies masks in order.
func (g *Generator) Generate(cfg specs.GenerateConfigSpec) (specs.DatasetSpec, error) {
	if cfg.Minutes <= 0 {
		return specs.DatasetSpec{}, fmt.Errorf("duration must be positive, got %v minutes", cfg.Minutes)
	}
	if cfg.IntervalSeconds <= 0 {
		return specs.DatasetSpec{}, fmt.Errorf("interval must be positive, got %v seconds", cfg.IntervalSeconds)
	}

	// One extra point so the end-of-range instant is included: a 1 minute
	// dataset at 10s intervals runs 0..60s inclusive.
	numPoints := int(cfg.Minutes*60/cfg.IntervalSeconds) + 1

	startTime := cfg.StartTime
	if startTime.IsZero() {
		startTime = time.Now().Add(-time.Duration(cfg.Minutes * float64(time.Minute)))
	}

	timestamps := make([]time.Time, numPoints)
	secondsTimestamps := make([]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		secondsTimestamps[i] = float64(i) * cfg.IntervalSeconds
		timestamps[i] = startTime.Add(time.Duration(secondsTimestamps[i] * float64(time.Second)))
	}

	values := make(map[string][]float64, g.registry.Len())
	for _, name := range g.registry.Names() {
		field, _ := g.registry.Field(name)
		series := make([]float64, numPoints)
		for i := range series {
			series[i] = field.Min()
		}
		values[name] = series
	}

	if len(cfg.Keyframes) > 0 {
		g.applyKeyframes(values, cfg, numPoints)
	} else {
		g.applyDefaultPattern(values, cfg, numPoints)
	}

	for _, maskStr := range cfg.Masks {
		if err := ApplyMask(values, maskStr, secondsTimestamps, g.registry); err != nil {
			g.logger.Warn("skipping mask", "mask", maskStr, "error", err)
			g.publish(MaskRejectedEvent{Mask: maskStr, Err: err})
		}
	}

	dataset := specs.DatasetSpec{
		ID:                uuid.NewString(),
		Timestamps:        timestamps,
		SecondsTimestamps: secondsTimestamps,
		Fields:            make(map[string]specs.FieldSeriesSpec, g.registry.Len()),
		Items:             map[string]map[string][]float64{"default": make(map[string][]float64, g.registry.Len())},
	}
	for name, series := range values {
		field, _ := g.registry.Field(name)
		dataset.Fields[name] = specs.FieldSeriesSpec{
			Values: append([]float64(nil), series...),
			Config: field.ToSpec(),
		}
		dataset.Items["default"][name] = series
	}

	g.logger.Debug("dataset generated", "id", dataset.ID, "points", numPoints, "fields", g.registry.Len())
	g.publish(DatasetGeneratedEvent{DatasetID: dataset.ID, Points: numPoints, Fields: g.registry.Len()})
	return dataset, nil
}

type keyframePoint struct {
	time  float64
	value float64
}

// optionKey identifies the options recorded for one concrete keyframe, keyed
// by its field and end time.
func optionKey(field string, t float64) string {
	return fmt.Sprintf("%s@%g", field, t)
}

// mergeOptions folds src into dst. Post-behavior options stay keyframe-local
// unless includePost is set (default-setting keyframes merge everything).
func mergeOptions(dst *KeyframeOptions, src KeyframeOptions, includePost bool) {
	if src.MovementType != "" {
		dst.MovementType = src.MovementType
	}
	if src.Pow != 0 {
		dst.Pow = src.Pow
	}
	if src.Noise != nil {
		dst.Noise = src.Noise
	}
	if includePost {
		if src.PostBehavior != "" {
			dst.PostBehavior = src.PostBehavior
		}
		if src.PostValue != nil {
			dst.PostValue = src.PostValue
		}
	}
}

func (g *Generator) applyKeyframes(values map[string][]float64, cfg specs.GenerateConfigSpec, numPoints int) {
	totalSeconds := float64(numPoints) * cfg.IntervalSeconds

	// Every field starts with an implicit keyframe at (0, min) so
	// interpolation always has a defined start.
	parsed := make(map[string][]keyframePoint, g.registry.Len())
	fieldOpts := make(map[string]KeyframeOptions, g.registry.Len())
	kfOpts := make(map[string]KeyframeOptions)

	for _, name := range g.registry.Names() {
		field, _ := g.registry.Field(name)
		parsed[name] = []keyframePoint{{time: 0, value: field.Min()}}
		noise := field.NoiseAmount()
		fieldOpts[name] = KeyframeOptions{
			MovementType: field.MovementType(),
			Noise:        &noise,
		}
	}

	for _, kfStr := range cfg.Keyframes {
		kf, err := ParseKeyframe(g.registry, kfStr, totalSeconds)
		if err != nil {
			g.logger.Warn("skipping keyframe", "keyframe", kfStr, "error", err)
			g.publish(KeyframeRejectedEvent{Keyframe: kfStr, Err: err})
			continue
		}

		field, _ := g.registry.Field(kf.Field)

		// Default-setting keyframe: update field options, no timeline point.
		if kf.Time == nil {
			opts := fieldOpts[kf.Field]
			mergeOptions(&opts, kf.Options, true)
			fieldOpts[kf.Field] = opts
			continue
		}

		t := *kf.Time
		if !kf.Options.IsZero() {
			kfOpts[optionKey(kf.Field, t)] = kf.Options
		}

		points := parsed[kf.Field]
		current := points[len(points)-1].value
		resolved := ResolveValue(field, kf.Value, current, cfg.Normalize)
		parsed[kf.Field] = append(points, keyframePoint{time: t, value: resolved})

		if !kf.Options.IsZero() {
			opts := fieldOpts[kf.Field]
			mergeOptions(&opts, kf.Options, false)
			fieldOpts[kf.Field] = opts
		}

		// Relationship propagation is a single pass per keyframe string;
		// chained relationships beyond one hop are not resolved.
		for _, rel := range kf.Relationships {
			related, ok := g.registry.Field(rel.Field)
			if !ok {
				continue
			}
			relValue := resolveRelationship(field, related, resolved, rel.Op, rel.Operand, cfg.Normalize)
			parsed[rel.Field] = append(parsed[rel.Field], keyframePoint{time: t, value: relValue})
		}
	}

	for name := range parsed {
		points := parsed[name]
		sort.SliceStable(points, func(i, j int) bool { return points[i].time < points[j].time })
	}

	defaultTransitions := make(map[string]string, len(fieldOpts))
	for name, opts := range fieldOpts {
		if opts.MovementType != "" {
			defaultTransitions[name] = opts.MovementType
		} else {
			defaultTransitions[name] = "linear"
		}
	}

	interval := cfg.IntervalSeconds
	for _, name := range g.registry.Names() {
		field, _ := g.registry.Field(name)
		series := values[name]
		points := parsed[name]

		// Pin the first keyframe's value and backfill to the start of the
		// timeline.
		first := points[0]
		firstIdx := int(first.time / interval)
		if firstIdx < 0 {
			firstIdx = 0
		}
		if firstIdx < numPoints {
			series[firstIdx] = first.value
			for i := 0; i < firstIdx; i++ {
				series[i] = first.value
			}
		}

		if len(points) >= 2 {
			g.interpolateSegments(series, points, name, field, fieldOpts, kfOpts, defaultTransitions, interval, numPoints)
		}

		// Noise model is identical in both generation modes and unaffected
		// by normalize.
		noiseAmount := field.NoiseAmount()
		if fieldOpts[name].Noise != nil {
			noiseAmount = *fieldOpts[name].Noise
		}
		g.applyNoise(series, field, noiseAmount*cfg.NoiseScale)
	}
}

func (g *Generator) interpolateSegments(
	series []float64,
	points []keyframePoint,
	name string,
	field Field,
	fieldOpts map[string]KeyframeOptions,
	kfOpts map[string]KeyframeOptions,
	defaultTransitions map[string]string,
	interval float64,
	numPoints int,
) {
	for i := 0; i < len(points)-1; i++ {
		start := points[i]
		end := points[i+1]

		// Last segment ending within two intervals of the end of the
		// timeline: pin the exact end value at its exact sample index so it
		// is never truncated away, with smooth easing across the remainder
		// if the field asks for it.
		if i == len(points)-2 && end.time > float64(numPoints-3)*interval {
			startIdx := int(start.time / interval)
			if startIdx < 0 {
				startIdx = 0
			}
			endIdx := numPoints - 1

			exactEndIdx := int(end.time / interval)
			if exactEndIdx > numPoints-1 {
				exactEndIdx = numPoints - 1
			}
			series[exactEndIdx] = end.value

			if fieldOpts[name].MovementType == "smooth" {
				steps := endIdx - startIdx
				if steps > 1 {
					for j, v := range Interpolate(start.value, end.value, steps, "smooth", nil) {
						if idx := startIdx + j; idx < numPoints {
							series[idx] = v
						}
					}
				}
			}
			continue
		}

		startIdx := int(start.time / interval)
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx := int(end.time / interval)
		if endIdx >= numPoints {
			endIdx = numPoints - 1
		}
		if endIdx <= startIdx {
			continue
		}
		steps := endIdx - startIdx

		// Per-keyframe movement type wins over the field default.
		method := defaultTransitions[name]
		key := optionKey(name, end.time)
		if opts, ok := kfOpts[key]; ok && opts.MovementType != "" {
			method = opts.MovementType
		}

		var params *InterpolationParams
		if method == "pow" {
			power := fieldOpts[name].Pow
			if power == 0 {
				power = 2.0
			}
			params = &InterpolationParams{Power: power}
		}

		for j, v := range Interpolate(start.value, end.value, steps, method, params) {
			if idx := startIdx + j; idx < numPoints {
				series[idx] = v
			}
		}

		// Post-behavior "return": synthesize a second segment running back
		// toward the pre-keyframe value (or an offset of it), clamped to the
		// timeline.
		if opts, ok := kfOpts[key]; ok && opts.PostBehavior == "return" {
			nextIdx := endIdx + 1
			if nextIdx >= numPoints {
				continue
			}

			returnSteps := steps
			returnVal := returnValueFor(start.value, opts.PostValue)

			if nextIdx+returnSteps >= numPoints {
				returnSteps = numPoints - nextIdx
			}
			if returnSteps > 0 {
				for j, v := range Interpolate(end.value, returnVal, returnSteps, method, params) {
					if idx := nextIdx + j; idx < numPoints {
						series[idx] = v
					}
				}
			}
		}
	}
}

// returnValueFor computes the target of a return segment from the
// pre-keyframe value. A zero operand falls back to the neutral element for
// that operator, so "^*0" returns to the previous value rather than zero.
func returnValueFor(previous float64, post *ValueOp) float64 {
	if post == nil {
		return previous
	}
	switch post.Op {
	case '+':
		return previous + post.Operand
	case '-':
		return previous - post.Operand
	case '*':
		if post.Operand == 0 {
			return previous
		}
		return previous * post.Operand
	case '/':
		if post.Operand == 0 {
			return previous
		}
		return previous / post.Operand
	default:
		return previous
	}
}

func (g *Generator) applyNoise(series []float64, field Field, amount float64) {
	bound := field.Range() * 0.01 * amount
	for i := range series {
		noise := (g.rng.Float64()*2 - 1) * bound
		series[i] = field.Clamp(series[i] + noise)
	}
}

func (g *Generator) applyDefaultPattern(values map[string][]float64, cfg specs.GenerateConfigSpec, numPoints int) {
	profile, ok := loadProfiles[cfg.Load]
	if !ok {
		g.logger.Warn("unknown load profile, using medium", "load", cfg.Load)
		profile = loadProfiles["medium"]
	}

	interval := cfg.IntervalSeconds
	riseTime := int(patternRiseSeconds / interval)
	holdTime := int(patternHoldSeconds / interval)
	fallTime := int(patternFallSeconds / interval)
	patternLength := riseTime + holdTime + fallTime

	primary := g.registry.Primary()

	current := 0
	for current+patternLength < numPoints {
		// Probabilistic check weighted by the profile frequency and the
		// sample density.
		if g.rng.Float64() < profile.frequency*(interval/60) {
			peak := primary.Max() * profile.intensity * (0.8 + 0.2*g.rng.Float64())

			pattern := Interpolate(primary.Min(), peak, riseTime, "smooth", nil)
			for i := 0; i < holdTime; i++ {
				pattern = append(pattern, peak)
			}
			pattern = append(pattern, Interpolate(peak, primary.Min(), fallTime, "smooth", nil)...)

			endIdx := current + len(pattern)
			if endIdx > numPoints {
				endIdx = numPoints
			}
			for i := 0; i < endIdx-current; i++ {
				values[primary.Name()][current+i] = pattern[i]
			}

			// Every other field gets a correlated copy, scaled per pattern
			// instance and clamped to its own max.
			for _, name := range g.registry.Names() {
				if name == primary.Name() {
					continue
				}
				field, _ := g.registry.Field(name)
				correlation := 0.5 + 0.4*g.rng.Float64()
				for i := 0; i < endIdx-current; i++ {
					values[name][current+i] = math.Min(pattern[i]*correlation, field.Max())
				}
			}

			g.publish(PatternEmittedEvent{Field: primary.Name(), StartIndex: current, Length: len(pattern), Peak: peak})
			current += patternLength
		} else {
			minPause := int(profile.minPause / interval)
			maxPause := int(profile.maxPause / interval)
			pause := minPause
			if maxPause > minPause {
				pause = minPause + g.rng.Intn(maxPause-minPause+1)
			}
			if pause < 1 {
				pause = 1
			}
			current += pause
		}
	}

	for _, name := range g.registry.Names() {
		field, _ := g.registry.Field(name)
		g.applyNoise(values[name], field, field.NoiseAmount()*cfg.NoiseScale)
	}
}

// Generate implements specs.Generate.
// Converts the field specs to a registry, generates, and returns the dataset
// contract.
func Generate(fields map[string]specs.FieldSpec, config specs.GenerateConfigSpec) (specs.DatasetSpec, error) {
	g, err := NewGenerator(fields)
	if err != nil {
		return specs.DatasetSpec{}, err
	}
	return g.Generate(config)
}
