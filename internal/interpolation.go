package internal

import "math"

// InterpolationParams carries method-specific parameters. Only pow reads it.
type InterpolationParams struct {
	Power float64
}

// Interpolate produces exactly steps values easing from start to end under
// the named method. steps < 1 yields an empty slice; steps == 1 yields
// [start]. Unknown methods fall back to linear. Pure and stateless.
func Interpolate(start, end float64, steps int, method string, params *InterpolationParams) []float64 {
	if steps < 1 {
		return []float64{}
	}
	if steps == 1 {
		return []float64{start}
	}

	switch method {
	case "smooth":
		return smoothInterpolate(start, end, steps)
	case "step":
		return stepInterpolate(start, end, steps)
	case "pulse":
		return pulseInterpolate(start, end, steps)
	case "sin":
		return sinInterpolate(start, end, steps)
	case "pow":
		power := 2.0
		if params != nil && params.Power != 0 {
			power = params.Power
		}
		return powInterpolate(start, end, steps, power)
	case "hold":
		return holdInterpolate(start, steps)
	default:
		return linearInterpolate(start, end, steps)
	}
}

func linearInterpolate(start, end float64, steps int) []float64 {
	stepSize := (end - start) / float64(steps-1)
	out := make([]float64, steps)
	for i := range out {
		out[i] = start + float64(i)*stepSize
	}
	return out
}

// smoothInterpolate is a cosine ease: (1-cos(t*pi))/2 over normalized t.
func smoothInterpolate(start, end float64, steps int) []float64 {
	diff := end - start
	out := make([]float64, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = start + (1-math.Cos(t*math.Pi))/2*diff
	}
	return out
}

// stepInterpolate holds start until the final sample, which jumps to end.
func stepInterpolate(start, end float64, steps int) []float64 {
	out := make([]float64, steps)
	for i := 0; i < steps-1; i++ {
		out[i] = start
	}
	out[steps-1] = end
	return out
}

// pulseInterpolate ramps linearly to end over the first half of the steps and
// back to start over the remainder. Used for spike-and-return within a single
// interpolation call when the generator doesn't run the return segment itself.
func pulseInterpolate(start, end float64, steps int) []float64 {
	mid := steps / 2
	out := make([]float64, 0, steps)

	for i := 0; i < mid; i++ {
		t := 1.0
		if mid > 1 {
			t = float64(i) / float64(mid-1)
		}
		out = append(out, start+t*(end-start))
	}
	for i := 0; i < steps-mid; i++ {
		t := 0.0
		if steps-mid > 1 {
			t = float64(i) / float64(steps-mid-1)
		}
		out = append(out, end-t*(end-start))
	}
	return out
}

// sinInterpolate rises and returns toward start by construction (sin(pi)=0);
// distinct from pulse, which ramps linearly.
func sinInterpolate(start, end float64, steps int) []float64 {
	out := make([]float64, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = start + math.Sin(t*math.Pi)*(end-start)
	}
	return out
}

func powInterpolate(start, end float64, steps int, power float64) []float64 {
	diff := end - start
	out := make([]float64, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = start + math.Pow(t, power)*diff
	}
	return out
}

func holdInterpolate(start float64, steps int) []float64 {
	out := make([]float64, steps)
	for i := range out {
		out[i] = start
	}
	return out
}
