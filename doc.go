// Package back40 is a library of data-parallel compute kernels — BFS
// frontier expansion, a distribution-sort scatter pass, bulk memory copy —
// built on one shared framework for partitioning work across many parallel
// blocks and for validating tuning configurations against an accelerator's
// resource budget.
//
// 🚀 What is back40computing?
//
//	A compute-kernel toolkit that brings together:
//		• arch        — accelerator generation profiles & resource limits
//		• kernelcfg   — tuned kernel configurations with derived geometry & occupancy
//		• workdist    — even grain partitioning + atomic work stealing
//		• grid        — the block/launch execution substrate
//		• rakingscan  — multi-channel raking exclusive prefix scan
//		• csr         — immutable compressed-sparse-row adjacency
//		• expand      — the BFS compact-expand frontier engine
//		• scatter     — spine-seeded distribution-sort downsweep
//		• bulkcopy    — tiled memory copy with SMALL/LARGE presets
//		• dispatch    — closed registry of precompiled tuned entry points
//
// ✨ Why choose back40computing?
//
//   - Configurations are validated once, up front – an invalid tuning can
//     never reach a launch
//   - Contention stays proportional to block count – one atomic reservation
//     per block per channel, never per element
//   - Pure Go – no cgo, blocks are goroutines, scratch is plain memory
//   - Reusable – scatter and bulkcopy run on the exact machinery the BFS
//     engine uses
//
// Quick ASCII picture of one expansion tile:
//
//	Load → Classify → ScanRank → Reserve → Emit → [Dedup]
//	                    (two-channel raking scan, one
//	                     fetch-and-add per channel)
//
// Dive into each package's doc.go for the full contract, invariants, and
// runnable examples.
//
//	go get github.com/flokey/back40computing
package back40
