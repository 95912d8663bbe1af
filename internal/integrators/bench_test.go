package integrators

import (
	"testing"
)

// oscillator is x'' = -x, stepped one axis at a time.
func benchOscillator(b *testing.B, step func(x, v, a, dt float64) (float64, float64)) {
	x, v := 1.0, 0.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, v = step(x, v, -x, 0.01)
	}
	_ = x
}

func BenchmarkSemiImplicit(b *testing.B) {
	benchOscillator(b, SemiImplicit)
}

func BenchmarkEuler(b *testing.B) {
	benchOscillator(b, Euler)
}
