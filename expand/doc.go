// Package expand implements the BFS compact-expand frontier engine: one
// traversal level takes the current frontier of vertex ids and emits every
// neighbor into a double-buffered output frontier, classifying each vertex
// by fan-out so high-degree rows are expanded cooperatively and low-degree
// rows by their owning lane alone.
//
// What
//
//	Per tile, strictly in order:
//
//	  Load      — pull the tile's vertex ids from the frontier; guarded
//	              tiles mask out-of-range lanes. Queue entries are read
//	              once (streaming policy on the tuned configuration).
//	  Classify  — row lookup; degree ≥ threshold tags a vertex coarse,
//	              otherwise fine. Masked lanes contribute zero everywhere.
//	  ScanRank  — one two-channel raking scan produces every lane's coarse
//	              and fine output ranks plus the tile's two totals.
//	  Reserve   — one fetch-and-add per channel on the frontier's global
//	              cursors; the returned bases are broadcast through scratch.
//	  Emit      — coarse rows are written by striding the whole block across
//	              each row in turn; fine rows are written whole by their
//	              owning lane at its scanned rank. Parents are written when
//	              the frontier tracks them.
//	  Dedup     — optional, best effort, tile-local: each just-emitted id is
//	              hashed into a small table; an id already present has its
//	              output slot overwritten with InvalidVertex. Collisions may
//	              miss duplicates; nothing is filtered across tiles or
//	              levels.
//
// Why
//
//	A lone thread walking a long adjacency row serializes its whole block,
//	and a block cooperating on a three-edge row wastes every other lane.
//	Splitting by a tuned degree threshold keeps both paths efficient, and
//	reserving output space with one atomic per channel per tile keeps
//	cursor contention proportional to block count, never element count.
//
// SharedScratch
//
//	Each block owns one fixed pool sized at configuration time. Within a
//	tile it is retagged across three mutually exclusive views — raking
//	lanes, gather buffer, hash table — and phases never touch the same
//	bytes concurrently. A configuration whose views cannot fit the
//	occupancy's local-memory share is rejected by NewEngine; the run path
//	performs no capacity checks.
//
// Sentinel entries
//
//	Dropped duplicates leave InvalidVertex in their reserved output slots,
//	so reservations stay disjoint without cross-tile compaction. The engine
//	skips InvalidVertex in its input, and Frontier.Compact collects the
//	valid entries for the next level.
//
// Errors
//
//   - ErrGraphNil, ErrFrontierNil for missing collaborators.
//   - ErrOptionViolation for an invalid Option.
//   - kernelcfg.ErrInvalidConfig (wrapped) for a configuration that may
//     never launch on the target architecture.
//   - ErrFrontierOverflow if a reservation exceeds the output capacity the
//     caller allocated; the pass fails as a single unit.
//   - csr.ErrVertexRange (wrapped) if a frontier entry is outside the
//     graph's vertex range; the pass fails as a single unit.
package expand
