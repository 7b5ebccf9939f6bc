// Package grid is the execution substrate: it runs a flat grid of equally
// sized, independent blocks and reports one result for the whole launch.
//
// What
//
//   - Spec: grid size plus an optional cap on blocks actually launched and
//     on concurrently running blocks.
//   - Launch(ctx, spec, fn) executes fn once per block. Blocks run in any
//     order, interleaved or disjoint; the only cross-block communication is
//     whatever atomics the caller threads through fn.
//   - SizeFor(profile, occupancy, grains) picks an oversubscribed grid size:
//     enough blocks to fill every unit at the configuration's occupancy,
//     never more blocks than grains of work.
//
// Why
//
//	A launch either completes all assigned work or fails as a single unit:
//	the first block error is the pass's one error, checked once after
//	completion, and outputs of a failed pass are undefined. There is no
//	per-block retry and no partial-progress contract — a calling layer may
//	re-invoke a whole pass.
//
// Execution model
//
//	Each block runs on one goroutine; lanes within a block execute
//	sequentially, so the strict phase ordering inside a kernel acts as the
//	block-wide barrier between pipeline phases. Blocks are bounded by the
//	concurrency cap, mirroring how many can be resident at once.
//
// Errors
//
//   - ErrGridSize for a grid of fewer than one block.
//   - Otherwise, whatever the first failing block returned, or the
//     context's error if the launch was cancelled before completion.
package grid
