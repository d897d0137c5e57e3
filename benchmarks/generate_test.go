package benchmarks

import (
	"math/rand"
	"testing"
	"time"

	"timesynth/internal"
	"timesynth/specs"
)

func benchFieldSpecs() map[string]specs.FieldSpec {
	return map[string]specs.FieldSpec{
		"cpu_usage": {Shorthand: "c", Min: 0, Max: 100, Mean: 20, MovementType: "smooth"},
		"memory_gb": {Shorthand: "m", Min: 0, Max: 32, Mean: 8},
		"disk_iops": {Shorthand: "d", Min: 0, Max: 5000, Mean: 200},
	}
}

func benchStartTime() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

// Benchmark keyframe-driven generation of an hour at 10-second resolution
func BenchmarkGenerate_Keyframes_Hour(b *testing.B) {
	generator, err := internal.NewGenerator(benchFieldSpecs(),
		internal.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		b.Fatal(err)
	}

	config := specs.GenerateConfigSpec{
		Minutes:         60,
		IntervalSeconds: 10,
		Keyframes: []string{
			"c80@10m",
			"c20@30m(m*0.25)",
			"cmax@45m~",
			"c10@end",
		},
		NoiseScale: 1,
		StartTime:  benchStartTime(),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := generator.Generate(config); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark default-pattern generation under high load
func BenchmarkGenerate_DefaultPattern_Hour(b *testing.B) {
	generator, err := internal.NewGenerator(benchFieldSpecs(),
		internal.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		b.Fatal(err)
	}

	config := specs.GenerateConfigSpec{
		Minutes:         60,
		IntervalSeconds: 10,
		Load:            "high",
		NoiseScale:      1,
		StartTime:       benchStartTime(),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := generator.Generate(config); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark generation with a sinusoidal mask applied on top
func BenchmarkGenerate_WithMask(b *testing.B) {
	generator, err := internal.NewGenerator(benchFieldSpecs(),
		internal.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		b.Fatal(err)
	}

	config := specs.GenerateConfigSpec{
		Minutes:         60,
		IntervalSeconds: 10,
		Keyframes:       []string{"c80@30m~"},
		Masks:           []string{"sin(amp=0.2, freq=0.001)"},
		NoiseScale:      1,
		StartTime:       benchStartTime(),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := generator.Generate(config); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark keyframe parsing alone
func BenchmarkParseKeyframe(b *testing.B) {
	registry, err := internal.NewFieldRegistry(benchFieldSpecs())
	if err != nil {
		b.Fatal(err)
	}

	keyframes := []string{
		"c80@10m",
		"c+15@20m~",
		"cmax@30m(pow=3, n=0.5)",
		"@40m;c~?*50:5s",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for _, kf := range keyframes {
			if _, err := internal.ParseKeyframe(registry, kf, 3600); err != nil {
				b.Fatal(err)
			}
		}
	}
}
