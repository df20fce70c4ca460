// Package metrics reduces grid states to scalar observables for the
// viewer's charts and the stats command.
package metrics

// Metric observes successive grid snapshots and reduces them to a
// scalar value.
type Metric interface {
	Name() string
	Observe(grid []float64)
	Value() float64
	Reset()
}

// Defaults returns the metric set shown by the viewer.
func Defaults() []Metric {
	return []Metric{
		NewMean(),
		NewEntropy(16),
		NewActivity(),
	}
}
