// Package kernelcfg builds and validates tuned kernel configurations — the
// compile-time record every kernel in this library is specialized by.
//
// What
//
//   - Config: log2-encoded tunables (threads, vector width, loads per tile,
//     raking threads, schedule granularity) plus occupancy cap, scan channel
//     count, work-stealing flag, coarse/fine threshold, and per-array cache
//     hints.
//   - New(profile, config) derives the full geometry once: thread count,
//     tile size, raking layout, the three-phase scratch footprint, and
//     occupancy against the profile's budgets.
//   - Derived.Valid() reports whether the configuration may ever be
//     launched; Occupancy==0 marks a combination whose footprint exceeds
//     the target's budget.
//
// Why
//
//	All tunables are log2-encoded so every derived size is a power of two:
//	index arithmetic reduces to shifts and masks, and tile/scratch layouts
//	stay alignment-friendly. Deriving once and caching on the value object
//	means the launch path never recomputes — and never re-checks — capacity.
//
// Scratch layout
//
//	One fixed pool per block, in 32-bit words:
//
//	  [0, Channels)            broadcast slots (reserved global bases)
//	  [Channels, Channels+U)   union pool, retagged per phase:
//	      view A — raking lanes:   Channels × (Threads + RakingThreads)
//	      view B — gather buffer:  4 × TileSize   (offset, length, source, rank)
//	      view C — hash table:     TileSize slots
//
//	U is the maximum of the three views; only one view is live at a time,
//	so a pool sized to the maximum can never overflow at run time.
//
// Errors
//
//   - ErrTileGeometry:   log2 tunables outside the supported range.
//   - ErrRakingGeometry: raking threads must divide threads and fit in one
//     lockstep subgroup.
//   - ErrChannelCount:   channel count not a positive power of two.
//   - ErrThreshold:      negative coarse/fine threshold.
//   - ErrInvalidConfig:  used by consumers to reject Valid()==false records;
//     New itself returns such records without error — they are legal values
//     that must simply never be launched.
package kernelcfg
