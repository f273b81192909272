// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/onchainrugs/rugweave/errs"
)

// SurfaceFactory allocates a surface for opts.
type SurfaceFactory func(opts Options) (Surface, error)

// RegistryEntry describes one registered backend.
type RegistryEntry struct {
	Name string

	// Priority orders automatic selection, highest first. The image backend
	// registers at 10; presenting backends such as the terminal view
	// register at 0 and are asked for by name.
	Priority int

	Factory SurfaceFactory

	// Available is consulted on every allocation, so a backend can come
	// and go with the device it presents to.
	Available func() bool
}

// Registry maps backend names to factories. The orchestrator allocates
// its canvas through the global registry, which lets tests and other
// targets substitute a surface without touching the drawing code:
//
//	surface.Register("terminal", 0, termFactory, screenAttached)
//	s, err := surface.NewSurfaceByName("terminal", 120, 80)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry
}

var globalRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]RegistryEntry)}
}

// Register adds or replaces a backend in the global registry. A nil
// available means always available.
func Register(name string, priority int, factory SurfaceFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns every global backend name, highest priority first.
func List() []string { return globalRegistry.List() }

// Available is List restricted to backends that are currently available.
func Available() []string { return globalRegistry.Available() }

// Get returns a copy of the named global entry.
func Get(name string) (RegistryEntry, bool) { return globalRegistry.Get(name) }

// NewSurface allocates from the best available global backend.
func NewSurface(width, height int) (Surface, error) {
	return globalRegistry.NewSurface(Options{Width: width, Height: height})
}

// NewSurfaceByName allocates from the named global backend.
func NewSurfaceByName(name string, width, height int) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, Options{Width: width, Height: height})
}

// NewSurfaceByNameWithOptions is NewSurfaceByName with full options.
func NewSurfaceByNameWithOptions(name string, opts Options) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, opts)
}

func (r *Registry) Register(name string, priority int, factory SurfaceFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	r.entries[name] = RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
	r.mu.Unlock()
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) List() []string { return r.names(false) }

func (r *Registry) Available() []string { return r.names(true) }

// names sorts by priority, then name, so selection is stable.
func (r *Registry) names(onlyAvailable bool) []string {
	r.mu.RLock()
	entries := make([]RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	var out []string
	for _, e := range entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

// NewSurface tries the available backends in priority order and returns
// the first surface allocated, or the last factory error.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	err := ErrNoBackendAvailable
	for _, name := range r.Available() {
		var s Surface
		if s, err = r.NewSurfaceByName(name, opts); err == nil {
			return s, nil
		}
	}
	return nil, err
}

func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	e, ok := r.Get(name)
	switch {
	case !ok:
		return nil, &BackendNotFoundError{Name: name}
	case !e.Available():
		return nil, &BackendUnavailableError{Name: name}
	}
	return e.Factory(opts)
}

// ErrNoBackendAvailable means no registered backend can allocate.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError reports an unregistered backend name.
type BackendNotFoundError struct{ Name string }

func (e *BackendNotFoundError) Error() string { return "surface: backend not found: " + e.Name }

// BackendUnavailableError reports a registered backend that cannot
// allocate right now.
type BackendUnavailableError struct{ Name string }

func (e *BackendUnavailableError) Error() string { return "surface: backend unavailable: " + e.Name }

// ImageBackend is the registry name of ImageSurface.
const ImageBackend = "image"

func init() {
	Register(ImageBackend, 10, func(opts Options) (Surface, error) {
		if opts.Width <= 0 || opts.Height <= 0 {
			return nil, errs.New(errs.CodeValidation, "surface size %dx%d must be positive", opts.Width, opts.Height)
		}
		s := NewImageSurface(opts.Width, opts.Height)
		if opts.Background != (Color{}) {
			s.Clear(opts.Background)
		}
		return s, nil
	}, nil)
}
