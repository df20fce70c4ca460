package metrics

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	m := NewMean()

	m.Observe([]float64{0, 0.5, 1.0, 0.5})
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected mean 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero mean after reset")
	}

	m.Observe(nil)
	if m.Value() != 0 {
		t.Error("expected zero mean for empty grid")
	}
}

func TestEntropyUniformVsConstant(t *testing.T) {
	e := NewEntropy(16)

	// One value per bin: maximal entropy, log2(16) = 4 bits.
	grid := make([]float64, 16)
	for i := range grid {
		grid[i] = (float64(i) + 0.5) / 16.0
	}
	e.Observe(grid)
	if math.Abs(e.Value()-4.0) > 1e-9 {
		t.Errorf("expected 4 bits for uniform spread, got %f", e.Value())
	}

	constant := make([]float64, 64)
	for i := range constant {
		constant[i] = 0.25
	}
	e.Observe(constant)
	if e.Value() != 0 {
		t.Errorf("expected 0 bits for constant grid, got %f", e.Value())
	}
}

func TestEntropyBinEdges(t *testing.T) {
	e := NewEntropy(16)
	// Values at the top of the range must land in the last bin, not
	// index out of it.
	e.Observe([]float64{0.999999, 1.0})
	if e.Value() != 0 {
		t.Errorf("top-edge values should share one bin, got %f bits", e.Value())
	}
}

func TestActivity(t *testing.T) {
	a := NewActivity()

	a.Observe([]float64{0.5, 0.5})
	if a.Value() != 0 {
		t.Errorf("first observation should score 0, got %f", a.Value())
	}

	a.Observe([]float64{0.7, 0.3})
	if math.Abs(a.Value()-0.2) > 1e-12 {
		t.Errorf("expected activity 0.2, got %f", a.Value())
	}

	a.Observe([]float64{0.7, 0.3})
	if a.Value() != 0 {
		t.Errorf("unchanged grid should score 0, got %f", a.Value())
	}

	a.Reset()
	a.Observe([]float64{0.1, 0.9})
	if a.Value() != 0 {
		t.Errorf("first observation after reset should score 0, got %f", a.Value())
	}
}

func TestDefaults(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Defaults() {
		names[m.Name()] = true
	}
	for _, want := range []string{"mean", "entropy", "activity"} {
		if !names[want] {
			t.Errorf("default metrics missing %q", want)
		}
	}
}
