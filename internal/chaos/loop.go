package chaos

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultInterval targets roughly 60 ticks per second.
const DefaultInterval = 16 * time.Millisecond

// Loop drives a Field from a single background goroutine at a fixed
// cadence. One mutex guards every read and write of the grid and the
// frame: a Step is a full read-then-write pass and must be atomic with
// respect to Render and Snapshot. Start and Stop join the previous
// goroutine before returning, so there is never more than one driver.
type Loop struct {
	field    *Field
	interval time.Duration

	mu    sync.Mutex // guards field and ticks
	ticks uint64

	ctl      sync.Mutex // serializes Start/Stop/Load
	stop     chan struct{}
	done     chan struct{}
	tickHook func() // test seam, called at the top of each cycle
}

// NewLoop wraps field in a stopped loop. A non-positive interval falls
// back to DefaultInterval.
func NewLoop(field *Field, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{field: field, interval: interval}
}

// Start launches the background evolution goroutine. A running loop is
// stopped and joined first.
func (l *Loop) Start() {
	l.ctl.Lock()
	defer l.ctl.Unlock()
	l.stopLocked()
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)
}

// Stop signals the background goroutine and waits for it to exit. A
// tick in flight always completes first; after Stop returns nothing is
// mutating the field. Safe to call on a stopped loop.
func (l *Loop) Stop() {
	l.ctl.Lock()
	defer l.ctl.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop, l.done = nil, nil
}

// Running reports whether the background goroutine is live.
func (l *Loop) Running() bool {
	l.ctl.Lock()
	defer l.ctl.Unlock()
	return l.stop != nil
}

func (l *Loop) run(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if l.tickHook != nil {
			l.tickHook()
		}
		now := float64(time.Now().UnixNano()) / 1e9
		l.mu.Lock()
		l.field.Step()
		l.field.Render(now)
		l.ticks++
		l.mu.Unlock()
		select {
		case <-stop:
			return
		case <-time.After(l.interval):
		}
	}
}

// Load seeds the field from data and (re)starts the loop so evolution
// resumes from the new state.
func (l *Loop) Load(data []byte) {
	l.Stop()
	l.mu.Lock()
	l.field.Seed(data)
	l.mu.Unlock()
	l.Start()
}

// LoadFile reads path and loads its contents. On a read error the
// field and the loop are left exactly as they were and the loop is not
// restarted.
func (l *Loop) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	l.Load(data)
	return nil
}

// Reset re-randomizes the grid and clears the frame under the lock, so
// a concurrent tick never observes a torn state.
func (l *Loop) Reset() {
	l.mu.Lock()
	l.field.Reset()
	l.mu.Unlock()
}

// Snapshot returns a defensive copy of the current frame. Later ticks
// never touch the returned slice.
func (l *Loop) Snapshot() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]byte, len(l.field.frame))
	copy(out, l.field.frame)
	return out
}

// SnapshotGrid returns a defensive copy of the current grid.
func (l *Loop) SnapshotGrid() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]float64, len(l.field.grid))
	copy(out, l.field.grid)
	return out
}

// Ticks reports how many evolution ticks have run since construction.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// SeedLen reports the size of the retained seed store.
func (l *Loop) SeedLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.field.SeedLen()
}

// LaunchDebugger is a placeholder plug-in hook. It performs no core
// interaction and only reports itself.
func (l *Loop) LaunchDebugger() string {
	return "chaos debugger: observing entropy flow"
}

// LaunchInspector is a placeholder plug-in hook, like LaunchDebugger.
func (l *Loop) LaunchInspector() string {
	return "chaos inspector: peering into the void"
}
