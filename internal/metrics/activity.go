package metrics

import "math"

// Activity measures how much the grid moved since the previous
// observation: the mean absolute cell delta. The first observation
// after a Reset scores 0.
type Activity struct {
	name string
	prev []float64
	last float64
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(grid []float64) {
	if a.prev == nil || len(a.prev) != len(grid) {
		a.prev = append([]float64(nil), grid...)
		a.last = 0
		return
	}
	sum := 0.0
	for i, v := range grid {
		sum += math.Abs(v - a.prev[i])
	}
	if len(grid) > 0 {
		a.last = sum / float64(len(grid))
	}
	copy(a.prev, grid)
}

func (a *Activity) Value() float64 {
	return a.last
}

func (a *Activity) Reset() {
	a.prev = nil
	a.last = 0
}
