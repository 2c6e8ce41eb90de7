package pipeline

import (
	"testing"

	"github.com/theirongolddev/revcalc/internal/model"
)

func BenchmarkRun(b *testing.B) {
	s := scenario300K()
	opts := Options{Clamp: true, Now: fixedNow}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(s, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunIncludeDaily(b *testing.B) {
	s := scenario300K()
	opts := Options{Clamp: true, Now: fixedNow, IncludeDaily: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(s, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunAll(b *testing.B) {
	scenarios := make([]model.Scenario, 256)
	for i := range scenarios {
		s := scenario300K()
		s.Params.TargetVolume = float64(i+1) * 1_000
		scenarios[i] = s
	}
	opts := Options{Now: fixedNow, IncludeDaily: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range RunAll(scenarios, opts, nil) {
			if r.Err != nil {
				b.Fatal(r.Err)
			}
		}
	}
}
