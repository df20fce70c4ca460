package chaos

import "testing"

func BenchmarkStep(b *testing.B) {
	f := testField(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

func BenchmarkRender(b *testing.B) {
	f := testField(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Render(float64(i) * 0.016)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	l := NewLoop(testField(1), DefaultInterval)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Snapshot()
	}
}
