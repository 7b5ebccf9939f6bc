package dispatch

import (
	"errors"
	"fmt"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/kernelcfg"
)

// Sentinel errors for registration and resolution.
var (
	// ErrInvalidEntry indicates a configuration that could never launch on
	// its profile.
	ErrInvalidEntry = errors.New("dispatch: entry configuration is not launchable")
	// ErrDuplicateEntry indicates a (tag, class) key registered twice.
	ErrDuplicateEntry = errors.New("dispatch: entry already registered")
	// ErrNoEntry indicates resolution against a key nothing was registered
	// under.
	ErrNoEntry = errors.New("dispatch: no entry registered")
)

// SizeClass partitions workloads by element count.
type SizeClass int

const (
	// Small marks workloads at or below the selection threshold.
	Small SizeClass = iota
	// Large marks workloads above it.
	Large
)

// String implements fmt.Stringer.
func (c SizeClass) String() string {
	if c == Small {
		return "small"
	}
	return "large"
}

// SelectClass classifies a workload of n elements against the threshold.
func SelectClass(n, threshold int) SizeClass {
	if n <= threshold {
		return Small
	}
	return Large
}

// Key identifies one specialization slot.
type Key struct {
	Tag   arch.Tag
	Class SizeClass
}

// Entry pairs a launchable derived configuration with its kernel value.
type Entry[K any] struct {
	Config kernelcfg.Derived
	Kernel K
}

// Registry is a closed table of kernel specializations. Register all
// entries at setup, then only Resolve.
type Registry[K any] struct {
	entries map[Key]Entry[K]
}

// NewRegistry returns an empty registry.
func NewRegistry[K any]() *Registry[K] {
	return &Registry[K]{entries: make(map[Key]Entry[K])}
}

// Register derives and validates the configuration for the profile and
// stores the entry under (profile tag, class).
func (r *Registry[K]) Register(p arch.Profile, class SizeClass, c kernelcfg.Config, kernel K) error {
	key := Key{Tag: p.Tag, Class: class}
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateEntry, key.Tag, key.Class)
	}
	cfg, err := kernelcfg.New(p, c)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	if !cfg.Valid() {
		return fmt.Errorf("%w: %s/%s", ErrInvalidEntry, key.Tag, key.Class)
	}
	r.entries[key] = Entry[K]{Config: cfg, Kernel: kernel}
	return nil
}

// Resolve returns the entry registered under (tag, class).
func (r *Registry[K]) Resolve(tag arch.Tag, class SizeClass) (Entry[K], error) {
	e, ok := r.entries[Key{Tag: tag, Class: class}]
	if !ok {
		return Entry[K]{}, fmt.Errorf("%w: %s/%s", ErrNoEntry, tag, class)
	}
	return e, nil
}

// Len returns the number of registered entries.
func (r *Registry[K]) Len() int { return len(r.entries) }
