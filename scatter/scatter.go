package scatter

import (
	"context"
	"errors"
	"fmt"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/grid"
	"github.com/flokey/back40computing/kernelcfg"
	"github.com/flokey/back40computing/rakingscan"
	"github.com/flokey/back40computing/workdist"
)

// Sentinel errors for downsweep construction and launch.
var (
	// ErrRadixBits indicates a radix outside [1,6] or a digit window that
	// reaches past bit 32.
	ErrRadixBits = errors.New("scatter: radix bits must be in [1,6] and fit within 32-bit keys")
	// ErrWorkStealing indicates a stealing configuration. The spine counts
	// each block's statically planned range, so only the static schedule
	// matches the precomputed offsets.
	ErrWorkStealing = errors.New("scatter: the downsweep requires the static schedule")
	// ErrLengthMismatch indicates values or outputs that do not match the
	// key count.
	ErrLengthMismatch = errors.New("scatter: values and outputs must match the key count")
	// ErrSpineShape indicates a spine that is not digits x gridSize for the
	// given input length.
	ErrSpineShape = errors.New("scatter: spine must hold digits x grid size entries")
)

// maxRadixBits keeps the digit channel count within the scan layout's limit.
const maxRadixBits = 6

// Downsweep is the distribution-sort scatter kernel bound to one
// (profile, configuration, radix) triple. It is immutable after
// construction and safe for concurrent passes onto distinct outputs.
type Downsweep struct {
	prof      arch.Profile
	cfg       kernelcfg.Derived
	radixBits int
	digits    int
	scan      *rakingscan.Scanner
	perLane   int
}

// DefaultConfig returns the tuned downsweep configuration: 128-thread
// blocks, two-element vectors, two loads per tile, one raking subgroup.
// Scatter cost is uniform per key, so the static schedule suffices.
func DefaultConfig() kernelcfg.Config {
	return kernelcfg.Config{
		LogThreads:       7,
		LogVectorWidth:   1,
		LogLoadsPerTile:  1,
		LogRakingThreads: 5,
	}
}

// NewDownsweep binds a tuned configuration to a profile and radix. The
// channel count is forced to 2^radixBits, one scan channel per digit.
func NewDownsweep(p arch.Profile, c kernelcfg.Config, radixBits int) (*Downsweep, error) {
	if radixBits < 1 || radixBits > maxRadixBits {
		return nil, fmt.Errorf("%w: got %d", ErrRadixBits, radixBits)
	}
	if c.WorkStealing {
		return nil, ErrWorkStealing
	}

	digits := 1 << radixBits
	c.Channels = digits
	cfg, err := kernelcfg.New(p, c)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	if !cfg.Valid() {
		return nil, fmt.Errorf("scatter: %w", kernelcfg.ErrInvalidConfig)
	}

	scan, err := rakingscan.New(cfg.Threads, digits, p.SubgroupWidth, cfg.RakingThreads)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}

	return &Downsweep{
		prof:      p,
		cfg:       cfg,
		radixBits: radixBits,
		digits:    digits,
		scan:      scan,
		perLane:   cfg.VectorWidth * cfg.LoadsPerTile,
	}, nil
}

// Config exposes the derived configuration the kernel was specialized by.
func (d *Downsweep) Config() kernelcfg.Derived { return d.cfg }

// Digits returns the bucket count, 2^radixBits.
func (d *Downsweep) Digits() int { return d.digits }

// GridSize returns the grid this kernel launches for n keys. BuildSpine and
// Scatter derive it identically; a spine built for a different grid is
// rejected by shape.
func (d *Downsweep) GridSize(n int) int {
	if n <= 0 {
		return 0
	}
	grains := workdist.Grains(uint64(n), uint64(d.cfg.ScheduleGranularity))
	return grid.SizeFor(d.prof, d.cfg.Occupancy, grains)
}

// checkWindow validates the digit window [bitOffset, bitOffset+radixBits).
func (d *Downsweep) checkWindow(bitOffset uint) error {
	if bitOffset+uint(d.radixBits) > 32 {
		return fmt.Errorf("%w: bit offset %d", ErrRadixBits, bitOffset)
	}
	return nil
}

// BuildSpine counts each planned block range's digit histogram and scans the
// counts digit-major, yielding every (digit, block) segment's exclusive base:
// spine[digit*gridSize + block]. It runs serially; the production upsweep and
// spine kernels are external collaborators sharing this layout.
func (d *Downsweep) BuildSpine(keys []uint32, bitOffset uint) ([]uint32, error) {
	if err := d.checkWindow(bitOffset); err != nil {
		return nil, err
	}
	total := uint64(len(keys))
	if total == 0 {
		return []uint32{}, nil
	}

	gridSize := d.GridSize(len(keys))
	ranges, err := workdist.Plan(total, gridSize, uint64(d.cfg.ScheduleGranularity))
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}

	mask := uint32(d.digits - 1)
	spine := make([]uint32, d.digits*gridSize)
	for b, r := range ranges {
		for _, k := range keys[r.Offset:r.End()] {
			dig := (k >> bitOffset) & mask
			spine[int(dig)*gridSize+b]++
		}
	}

	var running uint32
	for i, c := range spine {
		spine[i], running = running, running+c
	}
	return spine, nil
}

// Scatter writes every key (and its value, when values is non-nil) to its
// bucket-ordered position: the spine base for (digit, block) plus the
// block's running consumption plus the key's scanned rank within its tile.
// Blocks write disjoint output positions, so a completed pass is
// deterministic regardless of block interleaving.
func (d *Downsweep) Scatter(ctx context.Context, keys, values, spine, outKeys, outValues []uint32, bitOffset uint) error {
	if err := d.checkWindow(bitOffset); err != nil {
		return err
	}
	if len(outKeys) != len(keys) {
		return ErrLengthMismatch
	}
	if values != nil && (len(values) != len(keys) || len(outValues) != len(keys)) {
		return ErrLengthMismatch
	}
	if values == nil && outValues != nil {
		return ErrLengthMismatch
	}

	total := uint64(len(keys))
	if total == 0 {
		return nil
	}

	gridSize := d.GridSize(len(keys))
	if len(spine) != d.digits*gridSize {
		return fmt.Errorf("%w: got %d, want %d", ErrSpineShape, len(spine), d.digits*gridSize)
	}

	ranges, err := workdist.Plan(total, gridSize, uint64(d.cfg.ScheduleGranularity))
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	in := pass{
		d:         d,
		keys:      keys,
		values:    values,
		spine:     spine,
		outKeys:   outKeys,
		outValues: outValues,
		gridSize:  gridSize,
		shift:     bitOffset,
		mask:      uint32(d.digits - 1),
	}
	return grid.Launch(ctx, grid.Spec{GridSize: gridSize}, func(b grid.Block) error {
		newBlockState(&in, b.Index).runRange(ranges[b.Index])
		return nil
	})
}
