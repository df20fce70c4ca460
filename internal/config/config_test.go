package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IntervalMS != DefaultIntervalMS {
		t.Errorf("expected interval %d, got %d", DefaultIntervalMS, cfg.IntervalMS)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Theme == "" {
		t.Error("theme should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flame64.yaml")
	cfg := DefaultConfig()
	cfg.FPS = 60
	cfg.Theme = "phosphor"
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.FPS != 60 || loaded.Theme != "phosphor" || loaded.Seed != 42 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flame64.yaml")
	if err := os.WriteFile(path, []byte("fps: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 12 {
		t.Errorf("expected fps 12, got %d", cfg.FPS)
	}
	if cfg.IntervalMS != DefaultIntervalMS {
		t.Errorf("expected default interval, got %d", cfg.IntervalMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero interval", Config{IntervalMS: 0, FPS: 30}},
		{"negative interval", Config{IntervalMS: -1, FPS: 30}},
		{"zero fps", Config{IntervalMS: 16, FPS: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestInterval(t *testing.T) {
	cfg := &Config{IntervalMS: 16, FPS: 30}
	if cfg.Interval() != 16*time.Millisecond {
		t.Errorf("expected 16ms, got %v", cfg.Interval())
	}
}

func TestWatcherReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flame64.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	reloaded := make(chan *Config, 1)
	w.OnChange(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	next := DefaultConfig()
	next.FPS = 99
	if err := Save(path, next); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.FPS != 99 {
			t.Errorf("reloaded fps = %d, want 99", cfg.FPS)
		}
		if w.Config().FPS != 99 {
			t.Errorf("Config() fps = %d, want 99", w.Config().FPS)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherKeepsConfigOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flame64.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("fps: [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if w.Config().FPS != DefaultFPS {
		t.Errorf("bad file replaced config: fps = %d", w.Config().FPS)
	}
}
