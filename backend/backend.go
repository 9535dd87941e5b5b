// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects the device implementation that effect programs
// compile against.
//
// Backends register themselves from init() functions in their packages;
// importing a backend package makes it available:
//
//	import _ "github.com/gogpu/fx/backend/software"
package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/fx/program"
)

// Backend names.
const (
	BackendWgpu     = "wgpu"
	BackendSoftware = "software"
)

// ErrBackendNotAvailable is returned when no usable backend is
// registered, or the requested one is missing.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Factory creates a device. A factory may fail at runtime (no GPU
// adapter, too many open contexts); the registry treats a failure as
// "this backend is unavailable right now".
type Factory func() (program.Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for automatic selection, fastest first.
	priority = []string{BackendWgpu, BackendSoftware}
)

// Register registers a device factory under name, replacing any
// previous registration. Typically called from a backend package's
// init().
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend. Useful for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates a device from the named backend.
func New(name string) (program.Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, ErrBackendNotAvailable
	}
	return factory()
}

// Default creates a device from the best available backend: wgpu when a
// GPU is reachable, the software rasterizer otherwise.
func Default() (program.Device, error) {
	registryMu.RLock()
	ordered := make([]Factory, 0, len(factories))
	seen := make(map[string]bool, len(factories))
	for _, name := range priority {
		if factory, ok := factories[name]; ok {
			ordered = append(ordered, factory)
			seen[name] = true
		}
	}
	for name, factory := range factories {
		if !seen[name] {
			ordered = append(ordered, factory)
		}
	}
	registryMu.RUnlock()

	var firstErr error
	for _, factory := range ordered {
		d, err := factory()
		if err == nil && d != nil {
			return d, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrBackendNotAvailable
}
