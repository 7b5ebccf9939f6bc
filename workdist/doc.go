// Package workdist partitions a global element range across the blocks of
// one launch, statically or through a work-stealing shared counter.
//
// What
//
//   - Plan(total, gridSize, granularity) splits [0,total) into grain-sized
//     units and deals them as evenly as possible: block lengths differ by at
//     most one grain, surplus grains go to the lowest-indexed blocks, and
//     exactly the block holding the partial tail grain is marked guarded.
//   - Counter is the shared claim ticket for the stealing variant: a block
//     that finishes its static allotment fetch-and-adds the counter to claim
//     the next unclaimed grain, and terminates once the claimed index
//     reaches the grain count.
//
// Why
//
//	Static planning costs nothing at run time and is exact when per-element
//	cost is uniform. When cost varies wildly (vertex fan-out), the stealing
//	counter trades one atomic per claimed grain for resilience against
//	stragglers. No ordering across blocks is guaranteed either way — only
//	full, disjoint coverage of the input range.
//
// Guarded ranges
//
//	A WorkRange's guarded portion is the tail that may be only partially
//	full: it must be processed with element-wise bounds checks instead of at
//	full vector width. At most one block per plan carries a non-empty guard.
//
// Errors
//
//   - ErrGridSize     if gridSize < 1.
//   - ErrGranularity  if granularity < 1.
package workdist
