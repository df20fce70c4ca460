package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads a config file. On every write to the file it
// reparses, keeps the previous config if the new one is invalid, and
// calls the registered callbacks with the fresh value.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher

	mu        sync.RWMutex
	cfg       *Config
	callbacks []func(*Config)

	wg   sync.WaitGroup
	quit chan struct{}
}

// NewWatcher loads path and prepares a watcher for it. Call Start to
// begin receiving reloads and Stop when done.
func NewWatcher(path string) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("initial config load: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path: path,
		fs:   fs,
		cfg:  cfg,
		quit: make(chan struct{}),
	}, nil
}

// Config returns the most recently loaded configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// OnChange registers fn to run after each successful reload.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

func (w *Watcher) Start() error {
	if err := w.fs.Add(w.path); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.wg.Add(1)
	go w.watch()
	return nil
}

func (w *Watcher) Stop() error {
	close(w.quit)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	// Debounce: editors often fire several writes per save.
	var pending *time.Timer
	for {
		select {
		case <-w.quit:
			if pending != nil {
				pending.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(100*time.Millisecond, w.reload)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep the last good config; a half-written file will fire
		// another event when the write completes.
		return
	}
	w.mu.Lock()
	w.cfg = cfg
	callbacks := append(([]func(*Config))(nil), w.callbacks...)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
}
