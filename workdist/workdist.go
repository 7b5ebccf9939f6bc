package workdist

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors for plan construction.
var (
	// ErrGridSize indicates a grid of fewer than one block.
	ErrGridSize = errors.New("workdist: grid size must be at least 1")
	// ErrGranularity indicates a zero scheduling grain.
	ErrGranularity = errors.New("workdist: schedule granularity must be at least 1")
)

// WorkRange is one block's exclusive slice of the input for one launch.
// The guarded portion marks the tail that may be only partially full and
// must be bounds-checked element by element.
type WorkRange struct {
	Offset        uint64
	Length        uint64
	GuardedOffset uint64
	GuardedLength uint64
}

// End returns the first element past the range.
func (r WorkRange) End() uint64 { return r.Offset + r.Length }

// Empty reports whether the block received no work.
func (r WorkRange) Empty() bool { return r.Length == 0 }

// Grains returns the number of granularity-sized units covering total
// elements (the last unit may be partial).
func Grains(total, granularity uint64) uint64 {
	if granularity == 0 {
		return 0
	}
	return (total + granularity - 1) / granularity
}

// Plan partitions [0,total) into gridSize ranges of whole grains.
// Grains are dealt as evenly as possible: the lowest-indexed blocks receive
// the surplus, so any two ranges differ by at most one grain. The single
// block covering the partial tail grain, if any, carries the guard.
func Plan(total uint64, gridSize int, granularity uint64) ([]WorkRange, error) {
	if gridSize < 1 {
		return nil, ErrGridSize
	}
	if granularity < 1 {
		return nil, ErrGranularity
	}

	grains := Grains(total, granularity)
	per := grains / uint64(gridSize)
	surplus := grains % uint64(gridSize)

	ranges := make([]WorkRange, gridSize)
	var off uint64
	for b := range ranges {
		g := per
		if uint64(b) < surplus {
			g++
		}
		length := g * granularity
		if off+length > total {
			length = total - off
		}
		ranges[b] = WorkRange{Offset: off, Length: length}
		off += length
	}

	// The tail grain is partial iff granularity does not divide total; it
	// always lands in the last non-empty block.
	if tail := total % granularity; tail != 0 {
		for b := gridSize - 1; b >= 0; b-- {
			if ranges[b].Length > 0 {
				ranges[b].GuardedOffset = total - tail
				ranges[b].GuardedLength = tail
				break
			}
		}
	}
	return ranges, nil
}

// Counter is the shared work-stealing claim ticket: a single atomic integer
// advanced by one fetch-and-add per claimed grain per block.
type Counter struct {
	next atomic.Uint64
}

// NewCounter returns a counter whose first claim yields seed.
func NewCounter(seed uint64) *Counter {
	c := &Counter{}
	c.next.Store(seed)
	return c
}

// ClaimNext atomically claims the next unclaimed grain index. The caller
// terminates once the returned index reaches the total grain count.
func (c *Counter) ClaimNext() uint64 {
	return c.next.Add(1) - 1
}
