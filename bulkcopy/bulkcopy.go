package bulkcopy

import (
	"context"
	"errors"
	"fmt"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/dispatch"
	"github.com/flokey/back40computing/grid"
	"github.com/flokey/back40computing/kernelcfg"
	"github.com/flokey/back40computing/workdist"
)

// ErrLengthMismatch indicates dst and src of unequal length.
var ErrLengthMismatch = errors.New("bulkcopy: dst and src lengths differ")

// DefaultThreshold is the element count at which the dispatcher switches
// from the small preset to the large one.
const DefaultThreshold = 1 << 16

// SmallConfig returns the preset for short inputs: shallow 64-thread tiles
// so a few thousand elements still spread across blocks.
func SmallConfig() kernelcfg.Config {
	return kernelcfg.Config{LogThreads: 6}
}

// LargeConfig returns the preset for long inputs: 128-thread blocks,
// four-element vectors, four tiles per grain. Sized to stay launchable on
// the legacy profile's local-memory budget as well.
func LargeConfig() kernelcfg.Config {
	return kernelcfg.Config{
		LogThreads:             7,
		LogVectorWidth:         2,
		LogScheduleGranularity: 2,
	}
}

// Copier is one tuned copy kernel. It is immutable after construction and
// safe for concurrent passes onto distinct destinations.
type Copier struct {
	prof arch.Profile
	cfg  kernelcfg.Derived
}

// NewCopier binds a tuned configuration to a profile.
func NewCopier(p arch.Profile, c kernelcfg.Config) (*Copier, error) {
	cfg, err := kernelcfg.New(p, c)
	if err != nil {
		return nil, fmt.Errorf("bulkcopy: %w", err)
	}
	if !cfg.Valid() {
		return nil, fmt.Errorf("bulkcopy: %w", kernelcfg.ErrInvalidConfig)
	}
	return &Copier{prof: p, cfg: cfg}, nil
}

// Config exposes the derived configuration the copier was specialized by.
func (c *Copier) Config() kernelcfg.Derived { return c.cfg }

// Copy moves src into dst tile by tile. Full tiles move with the bulk copy;
// the guarded tail walks element by element.
func (c *Copier) Copy(ctx context.Context, dst, src []uint32) error {
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}
	total := uint64(len(src))
	if total == 0 {
		return nil
	}

	gran := uint64(c.cfg.ScheduleGranularity)
	grains := workdist.Grains(total, gran)
	gridSize := grid.SizeFor(c.prof, c.cfg.Occupancy, grains)
	ranges, err := workdist.Plan(total, gridSize, gran)
	if err != nil {
		return fmt.Errorf("bulkcopy: %w", err)
	}

	tile := uint64(c.cfg.TileSize)
	return grid.Launch(ctx, grid.Spec{GridSize: gridSize}, func(b grid.Block) error {
		r := ranges[b.Index]
		for start := r.Offset; start < r.End(); start += tile {
			end := start + tile
			if end > r.End() {
				end = r.End()
			}
			if r.GuardedLength != 0 && end > r.GuardedOffset {
				for i := start; i < end; i++ {
					dst[i] = src[i]
				}
				continue
			}
			copy(dst[start:end], src[start:end])
		}
		return nil
	})
}

// Dispatcher holds both presets behind a size-class registry and selects
// one per call.
type Dispatcher struct {
	reg       *dispatch.Registry[*Copier]
	tag       arch.Tag
	threshold int
}

// NewDispatcher registers the small and large presets for the profile.
func NewDispatcher(p arch.Profile) (*Dispatcher, error) {
	reg := dispatch.NewRegistry[*Copier]()
	for _, e := range []struct {
		class dispatch.SizeClass
		cfg   kernelcfg.Config
	}{
		{dispatch.Small, SmallConfig()},
		{dispatch.Large, LargeConfig()},
	} {
		k, err := NewCopier(p, e.cfg)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(p, e.class, e.cfg, k); err != nil {
			return nil, err
		}
	}
	return &Dispatcher{reg: reg, tag: p.Tag, threshold: DefaultThreshold}, nil
}

// Copy classifies the input by element count, resolves the matching preset
// and runs it.
func (d *Dispatcher) Copy(ctx context.Context, dst, src []uint32) error {
	e, err := d.reg.Resolve(d.tag, dispatch.SelectClass(len(src), d.threshold))
	if err != nil {
		return err
	}
	return e.Kernel.Copy(ctx, dst, src)
}
