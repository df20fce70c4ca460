package chaos

import (
	"math"
	"math/rand"
	"time"
)

const (
	// GridSize is the side length of the square state grid.
	GridSize = 64
	// FrameHeight and FrameWidth fix the rendered frame resolution.
	// Both map onto the grid with exact integer ratios: 240/3.75 = 64
	// and 320/5 = 64.
	FrameHeight = 240
	FrameWidth  = 320
	// MaxSeedBytes caps the retained seed store at 4 MiB.
	MaxSeedBytes = 4 * 1024 * 1024

	gridCells  = GridSize * GridSize
	frameBytes = FrameHeight * FrameWidth * 3
)

// Field owns the chaos grid and the rendered RGB frame. Grid values
// always lie in [0, 1). Field does no locking of its own; Loop
// serializes access.
type Field struct {
	grid  []float64
	next  []float64
	frame []byte
	seed  []byte
	rng   *rand.Rand
}

// NewField returns a field with a randomly initialized grid and a
// zeroed frame. A nil rng falls back to a time-seeded source; pass a
// fixed one to make evolution reproducible.
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Field{
		grid:  make([]float64, gridCells),
		next:  make([]float64, gridCells),
		frame: make([]byte, frameBytes),
		rng:   rng,
	}
	f.randomize()
	return f
}

func (f *Field) randomize() {
	for i := range f.grid {
		f.grid[i] = f.rng.Float64()
	}
}

// Seed retains up to MaxSeedBytes of data verbatim and rebuilds the
// grid from the first 4096 bytes of the truncated input, zero-padded
// if shorter. Byte k becomes cell (k/64, k%64) with value k/255. The
// frame is left untouched. Empty input yields an all-zero grid.
//
// A 0xff byte maps to exactly 1.0, one past the grid's steady-state
// range; the next Step wraps it back into [0, 1).
func (f *Field) Seed(data []byte) {
	if len(data) > MaxSeedBytes {
		data = data[:MaxSeedBytes]
	}
	f.seed = append(f.seed[:0], data...)
	for i := 0; i < gridCells; i++ {
		if i < len(data) {
			f.grid[i] = float64(data[i]) / 255.0
		} else {
			f.grid[i] = 0
		}
	}
}

// SeedLen reports how many seed bytes are retained.
func (f *Field) SeedLen() int { return len(f.seed) }

// Reset draws a fresh uniform [0,1) value for every cell and clears
// the frame.
func (f *Field) Reset() {
	f.randomize()
	for i := range f.frame {
		f.frame[i] = 0
	}
}

// Step advances the grid one tick:
//
//	new[i,j] = (old[i,j] + 0.1*S(i,j) + 0.05*U) mod 1
//
// where S is the sum of the clipped 3x3 window around the cell minus
// the cell itself (fewer neighbors at borders, no wraparound, no
// renormalization) and U is a fresh uniform draw per cell. The whole
// new grid is computed from the old one before the swap, so no cell
// reads a half-updated neighbor.
func (f *Field) Step() {
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			sum := 0.0
			for ni := max(i-1, 0); ni <= min(i+1, GridSize-1); ni++ {
				for nj := max(j-1, 0); nj <= min(j+1, GridSize-1); nj++ {
					sum += f.grid[ni*GridSize+nj]
				}
			}
			old := f.grid[i*GridSize+j]
			v := old + (sum-old)*0.1 + f.rng.Float64()*0.05
			f.next[i*GridSize+j] = mod1(v)
		}
	}
	f.grid, f.next = f.next, f.grid
}

// Render redraws the frame from the grid. Pixel (y,x) samples cell
// (floor(y/3.75), floor(x/5)) and its channels are modulated by now,
// seconds since an arbitrary epoch:
//
//	R = val * 127.5 * (1 + sin(now))
//	G = val * 127.5 * (1 + cos(1.1*now))
//	B = val * 127.5 * (1 + sin(1.2*now))
//
// Channel values are clamped to [0, 255] before the byte conversion
// rather than letting an over-range value wrap.
func (f *Field) Render(now float64) {
	r := 127.5 * (1 + math.Sin(now))
	g := 127.5 * (1 + math.Cos(1.1*now))
	b := 127.5 * (1 + math.Sin(1.2*now))
	for y := 0; y < FrameHeight; y++ {
		row := int(float64(y)/3.75) * GridSize
		for x := 0; x < FrameWidth; x++ {
			val := f.grid[row+x/5]
			o := (y*FrameWidth + x) * 3
			f.frame[o] = clampByte(val * r)
			f.frame[o+1] = clampByte(val * g)
			f.frame[o+2] = clampByte(val * b)
		}
	}
}

// At returns the grid value at row i, column j.
func (f *Field) At(i, j int) float64 { return f.grid[i*GridSize+j] }

// Grid returns the live grid buffer. Callers must not retain it across
// a Step, Seed, or Reset; Loop.SnapshotGrid returns a safe copy.
func (f *Field) Grid() []float64 { return f.grid }

// Frame returns the live frame buffer, laid out row-major with three
// bytes (R, G, B) per pixel. Same aliasing caveat as Grid;
// Loop.Snapshot returns a safe copy.
func (f *Field) Frame() []byte { return f.frame }

// mod1 wraps v into [0, 1), always non-negative.
func mod1(v float64) float64 {
	m := math.Mod(v, 1.0)
	if m < 0 {
		m++
	}
	if m >= 1 {
		return 0
	}
	return m
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
