package metrics

import "math"

// Entropy computes the Shannon entropy, in bits, of a histogram of the
// grid values over [0, 1). A uniform spread across all bins scores
// log2(bins); a constant grid scores 0.
type Entropy struct {
	name string
	bins int
	last float64
}

func NewEntropy(bins int) *Entropy {
	if bins < 2 {
		bins = 2
	}
	return &Entropy{name: "entropy", bins: bins}
}

func (e *Entropy) Name() string {
	return e.name
}

func (e *Entropy) Observe(grid []float64) {
	if len(grid) == 0 {
		e.last = 0
		return
	}
	hist := make([]int, e.bins)
	for _, v := range grid {
		b := int(v * float64(e.bins))
		if b >= e.bins {
			b = e.bins - 1
		}
		if b < 0 {
			b = 0
		}
		hist[b]++
	}
	h, n := 0.0, float64(len(grid))
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	e.last = h
}

func (e *Entropy) Value() float64 {
	return e.last
}

func (e *Entropy) Reset() {
	e.last = 0
}
