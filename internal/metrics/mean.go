package metrics

type Mean struct {
	name string
	last float64
}

func NewMean() *Mean {
	return &Mean{name: "mean"}
}

func (m *Mean) Name() string {
	return m.name
}

func (m *Mean) Observe(grid []float64) {
	if len(grid) == 0 {
		m.last = 0
		return
	}
	sum := 0.0
	for _, v := range grid {
		sum += v
	}
	m.last = sum / float64(len(grid))
}

func (m *Mean) Value() float64 {
	return m.last
}

func (m *Mean) Reset() {
	m.last = 0
}
