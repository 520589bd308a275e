package config

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML scenario file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Scenario
	onChange []func(*Scenario)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Scenario returns the current (latest) scenario.
func (l *Loader) Scenario() *Scenario {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the scenario reloads.
func (l *Loader) OnChange(fn func(*Scenario)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the scenario on
// file changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scenario watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("scenario watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := l.load()
					if err != nil {
						// Keep the old scenario.
						continue
					}
					l.swap(cfg)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the scenario file.
func (l *Loader) Reload() (*Scenario, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.swap(cfg)
	return cfg, nil
}

func (l *Loader) swap(cfg *Scenario) {
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*Scenario), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
}

func (l *Loader) load() (*Scenario, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", l.path, err)
	}
	var cfg Scenario
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", l.path, err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills unset engine tunables and generates ids for unnamed
// bodies and geometries.
func ApplyDefaults(cfg *Scenario) {
	if cfg.Engine.DefaultTolerance == 0 {
		cfg.Engine.DefaultTolerance = 1e-6
	}
	if cfg.Engine.TOIEpsilon == 0 {
		cfg.Engine.TOIEpsilon = math.Nextafter(1, 2) - 1
	}
	if cfg.Engine.ContactThreshold == 0 {
		cfg.Engine.ContactThreshold = 1e-6
	}
	if cfg.Engine.MaxImpactRetries == 0 {
		cfg.Engine.MaxImpactRetries = 8
	}
	if cfg.Engine.ToleranceTableSize == 0 {
		cfg.Engine.ToleranceTableSize = 4096
	}
	if cfg.Engine.DetectorWorkers == 0 {
		cfg.Engine.DetectorWorkers = 1
	}
	for i := range cfg.Bodies {
		if cfg.Bodies[i].ID == "" {
			cfg.Bodies[i].ID = uuid.New().String()
		}
		for j := range cfg.Bodies[i].Geometries {
			if cfg.Bodies[i].Geometries[j].ID == "" {
				cfg.Bodies[i].Geometries[j].ID = uuid.New().String()
			}
		}
	}
	for i := range cfg.Articulated {
		if cfg.Articulated[i].ID == "" {
			cfg.Articulated[i].ID = uuid.New().String()
		}
		for j := range cfg.Articulated[i].Joints {
			if cfg.Articulated[i].Joints[j].ID == "" {
				cfg.Articulated[i].Joints[j].ID = uuid.New().String()
			}
		}
	}
}
