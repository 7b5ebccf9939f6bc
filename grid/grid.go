package grid

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/flokey/back40computing/arch"
)

// ErrGridSize indicates a launch with fewer than one block.
var ErrGridSize = errors.New("grid: grid size must be at least 1")

// Spec shapes one launch.
type Spec struct {
	// GridSize is the number of blocks.
	GridSize int
	// MaxConcurrent bounds blocks running at once; 0 defaults to NumCPU.
	MaxConcurrent int
}

// Block identifies one block within its launch.
type Block struct {
	Index    int
	GridSize int
}

// BlockFunc is the body one block executes. Returning a non-nil error fails
// the whole launch; outputs of a failed launch are undefined.
type BlockFunc func(b Block) error

// SizeFor returns the grid size for a workload of the given grain count:
// every unit filled at the configuration's occupancy, capped so no block is
// launched without at least one grain of static work.
func SizeFor(p arch.Profile, occupancy int, grains uint64) int {
	size := p.Units * occupancy
	if u := uint64(size); u > grains {
		size = int(grains)
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Launch runs fn for every block of the grid and returns the first block
// error, if any, once all blocks have stopped. Cross-block ordering is
// unspecified.
func Launch(ctx context.Context, s Spec, fn BlockFunc) error {
	if s.GridSize < 1 {
		return ErrGridSize
	}
	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < s.GridSize; i++ {
		b := Block{Index: i, GridSize: s.GridSize}
		g.Go(func() error {
			// Checked once per block, not inside kernels: a launch is
			// cancelled wholesale or not at all.
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(b)
		})
	}
	return g.Wait()
}
