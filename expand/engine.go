package expand

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/csr"
	"github.com/flokey/back40computing/grid"
	"github.com/flokey/back40computing/kernelcfg"
	"github.com/flokey/back40computing/rakingscan"
	"github.com/flokey/back40computing/workdist"
)

// Engine expands one frontier level per call. It is immutable after
// construction and safe for concurrent passes onto distinct frontiers.
type Engine struct {
	prof    arch.Profile
	cfg     kernelcfg.Derived
	opts    Options
	scan    *rakingscan.Scanner
	perLane int
}

// DefaultConfig returns the tuned expansion configuration for a profile:
// 128-thread blocks, two-element vectors, two loads per tile, one raking
// subgroup, streaming frontier reads, work stealing on (vertex fan-out is
// exactly the non-uniform cost the stealing schedule exists for).
func DefaultConfig() kernelcfg.Config {
	return kernelcfg.Config{
		LogThreads:       7,
		LogVectorWidth:   1,
		LogLoadsPerTile:  1,
		LogRakingThreads: 5,
		WorkStealing:     true,
		QueueHint:        kernelcfg.HintStreaming,
	}
}

// NewEngine binds a tuned configuration to an architecture profile.
// Configurations that could overflow their local-memory share or whose
// occupancy is zero are rejected here; the run path never re-checks
// capacity.
func NewEngine(p arch.Profile, c kernelcfg.Config, opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	c.Channels = numChannels // coarse + fine, regardless of caller input
	cfg, err := kernelcfg.New(p, c)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	if !cfg.Valid() {
		return nil, fmt.Errorf("expand: %w", kernelcfg.ErrInvalidConfig)
	}

	scan, err := rakingscan.New(cfg.Threads, numChannels, p.SubgroupWidth, cfg.RakingThreads)
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}

	return &Engine{
		prof:    p,
		cfg:     cfg,
		opts:    o,
		scan:    scan,
		perLane: cfg.VectorWidth * cfg.LoadsPerTile,
	}, nil
}

// Config exposes the derived configuration the engine was specialized by.
func (e *Engine) Config() kernelcfg.Derived { return e.cfg }

// aggStats accumulates per-block counters with one add per field per block.
type aggStats struct {
	tiles, coarse, fine, dups, stolen atomic.Uint64
}

func (a *aggStats) add(s Stats) {
	a.tiles.Add(s.Tiles)
	a.coarse.Add(s.CoarseEmitted)
	a.fine.Add(s.FineEmitted)
	a.dups.Add(s.Duplicates)
	a.stolen.Add(s.StolenGrains)
}

func (a *aggStats) snapshot() *Stats {
	return &Stats{
		Tiles:         a.tiles.Load(),
		CoarseEmitted: a.coarse.Load(),
		FineEmitted:   a.fine.Load(),
		Duplicates:    a.dups.Load(),
		StolenGrains:  a.stolen.Load(),
	}
}

// Expand runs one traversal level: every neighbor of every valid id in
// the input frontier is emitted into out. The pass either completes all
// assigned work or returns a single error with out's contents undefined.
func (e *Engine) Expand(ctx context.Context, g *csr.Graph, in []uint32, out *Frontier) (*Stats, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if out == nil {
		return nil, ErrFrontierNil
	}

	total := uint64(len(in))
	if total == 0 {
		return &Stats{}, nil
	}

	gran := uint64(e.cfg.ScheduleGranularity)
	grains := workdist.Grains(total, gran)
	gridSize := grid.SizeFor(e.prof, e.cfg.Occupancy, grains)
	if e.opts.MaxGridSize > 0 && gridSize > e.opts.MaxGridSize {
		gridSize = e.opts.MaxGridSize
	}

	// Stealing schedule: every block owns its index'th grain statically and
	// claims the rest from the shared counter, seeded past the allotments.
	// Only the static schedule needs a precomputed plan.
	var (
		ranges  []workdist.WorkRange
		counter *workdist.Counter
	)
	if e.cfg.WorkStealing {
		counter = workdist.NewCounter(uint64(gridSize))
	} else {
		var err error
		ranges, err = workdist.Plan(total, gridSize, gran)
		if err != nil {
			return nil, fmt.Errorf("expand: %w", err)
		}
	}

	var agg aggStats
	err := grid.Launch(ctx, grid.Spec{GridSize: gridSize}, func(b grid.Block) error {
		bs := newBlockState(e, g, in, out)
		defer func() { agg.add(bs.stats) }()

		if counter == nil {
			return bs.runRange(ranges[b.Index])
		}
		if uint64(b.Index) < grains {
			if err := bs.runGrain(uint64(b.Index), total, gran, false); err != nil {
				return err
			}
		}
		for {
			idx := counter.ClaimNext()
			if idx >= grains {
				return nil
			}
			if err := bs.runGrain(idx, total, gran, true); err != nil {
				return err
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return agg.snapshot(), nil
}
