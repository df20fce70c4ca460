package chaos

import (
	"bytes"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopStartStop(t *testing.T) {
	l := NewLoop(testField(1), time.Millisecond)
	if l.Running() {
		t.Fatal("new loop reports running")
	}

	l.Start()
	if !l.Running() {
		t.Fatal("started loop reports stopped")
	}

	deadline := time.Now().Add(2 * time.Second)
	for l.Ticks() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if l.Ticks() == 0 {
		t.Fatal("loop never ticked")
	}

	l.Stop()
	if l.Running() {
		t.Fatal("stopped loop reports running")
	}
	n := l.Ticks()
	time.Sleep(20 * time.Millisecond)
	if l.Ticks() != n {
		t.Error("ticks advanced after Stop returned")
	}

	l.Stop() // idempotent
}

func TestLoopNoOverlappingTicks(t *testing.T) {
	l := NewLoop(testField(2), time.Millisecond)
	var active, overlaps int64
	l.tickHook = func() {
		if !atomic.CompareAndSwapInt64(&active, 0, 1) {
			atomic.AddInt64(&overlaps, 1)
		}
		time.Sleep(500 * time.Microsecond)
		atomic.StoreInt64(&active, 0)
	}

	for i := 0; i < 20; i++ {
		l.Start()
	}
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		l.Stop()
		l.Start()
	}
	l.Stop()

	if n := atomic.LoadInt64(&overlaps); n != 0 {
		t.Errorf("observed %d concurrent tick entries, want 0", n)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	f := testField(3)
	l := NewLoop(f, time.Millisecond)
	f.Render(1.0)

	snap := l.Snapshot()
	if allZero(snap) {
		t.Fatal("expected a non-zero rendered frame")
	}
	keep := append([]byte(nil), snap...)

	l.Reset() // zeroes the live frame
	if !bytes.Equal(snap, keep) {
		t.Error("snapshot changed when the live frame was mutated")
	}
	if !allZero(l.Snapshot()) {
		t.Error("live frame not cleared by Reset")
	}
}

func TestSnapshotGridIsolation(t *testing.T) {
	l := NewLoop(testField(4), time.Millisecond)
	g := l.SnapshotGrid()
	g[0] = -99
	if l.SnapshotGrid()[0] == -99 {
		t.Error("SnapshotGrid returned the live grid")
	}
}

func TestLoadRestartsFromSeed(t *testing.T) {
	l := NewLoop(testField(5), time.Millisecond)
	l.Start()
	defer l.Stop()

	data := make([]byte, 256)
	for k := range data {
		data[k] = byte(k)
	}
	l.Load(data)
	if !l.Running() {
		t.Error("loop stopped after Load")
	}
	if l.SeedLen() != len(data) {
		t.Errorf("seed store holds %d bytes, want %d", l.SeedLen(), len(data))
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.rom")
	data := []byte("some rom bytes")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	f := NewField(rand.New(rand.NewSource(6)))
	l := NewLoop(f, time.Millisecond)
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	l.Stop()
	if f.SeedLen() != len(data) {
		t.Errorf("seed store holds %d bytes, want %d", f.SeedLen(), len(data))
	}
}

func TestLoadFileMissing(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(7)))
	l := NewLoop(f, time.Millisecond)
	before := append([]float64(nil), f.grid...)

	err := l.LoadFile(filepath.Join(t.TempDir(), "nope.rom"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not wrap fs.ErrNotExist", err)
	}
	if l.Running() {
		t.Error("loop started despite the failed load")
	}
	for k := range before {
		if f.grid[k] != before[k] {
			t.Fatal("grid changed despite the failed load")
		}
	}
}

func TestPlaceholderTools(t *testing.T) {
	l := NewLoop(testField(8), time.Millisecond)
	if l.LaunchDebugger() == "" || l.LaunchInspector() == "" {
		t.Error("placeholder tools should report themselves")
	}
	if l.Running() {
		t.Error("placeholder tools must not touch the loop")
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
