// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/fx"
)

// Watcher hot-reloads preset bundles from a directory of JSON files, one
// bundle per file. The editor preview path uses it to pick up preset
// edits without restarting; the sqlite Store remains the durable source.
//
// Malformed files are logged and skipped, never fatal — a half-written
// save must not take down the watcher.
type Watcher struct {
	dir string
	fsw *fsnotify.Watcher

	mu      sync.RWMutex
	presets map[string]Preset // keyed by preset id
	files   map[string]string // file path -> preset id

	onChange func(Preset)

	done chan struct{}
}

// WatchDir loads every *.json bundle in dir and starts watching for
// changes. onChange, if non-nil, is called for each loaded or reloaded
// preset (including the initial load), from the watcher goroutine.
func WatchDir(dir string, onChange func(Preset)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preset: create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("preset: watch %q: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		fsw:      fsw,
		presets:  make(map[string]Preset),
		files:    make(map[string]string),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	w.loadAll()
	go w.run()
	return w, nil
}

// Get returns the loaded preset with the given id.
func (w *Watcher) Get(id string) (Preset, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.presets[id]
	return p, ok
}

// List returns a snapshot of every loaded preset.
func (w *Watcher) List() []Preset {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Preset, 0, len(w.presets))
	for _, p := range w.presets {
		out = append(out, p)
	}
	return out
}

// Close stops watching. Idempotent via fsnotify's own close handling.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
				w.loadFile(ev.Name)
			case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
				w.dropFile(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fx.Logger().Warn("preset watcher error", "dir", w.dir, "error", err)
		}
	}
}

func (w *Watcher) loadAll() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		fx.Logger().Warn("preset directory scan failed", "dir", w.dir, "error", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		w.loadFile(filepath.Join(w.dir, e.Name()))
	}
}

// loadFile reads one bundle file into the preset map. Files without an
// id key to their base name so hand-written bundles still load.
func (w *Watcher) loadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fx.Logger().Warn("preset read failed", "path", path, "error", err)
		return
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		fx.Logger().Warn("preset decode failed", "path", path, "error", err)
		return
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if p.Name == "" {
		p.Name = p.ID
	}

	w.mu.Lock()
	// A file rewritten with a different id replaces its old entry.
	if old, ok := w.files[path]; ok && old != p.ID {
		delete(w.presets, old)
	}
	w.files[path] = p.ID
	w.presets[p.ID] = p
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(p)
	}
}

func (w *Watcher) dropFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id, ok := w.files[path]; ok {
		delete(w.presets, id)
		delete(w.files, path)
	}
}
