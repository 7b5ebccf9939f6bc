// Package scatter implements the downsweep pass of a distribution sort:
// each tile's keys are bucketed by a digit, ranked inside their bucket with
// the same multi-channel raking scan the expansion engine uses, and written
// to bucket-ordered output at offsets seeded by a precomputed digit spine.
//
// What
//
//   - Downsweep: a tuned kernel bound to (profile, configuration, radix).
//   - Scatter consumes the spine — per-block per-digit exclusive base
//     offsets, digit-major: spine[digit·gridSize + block] — and writes
//     key/value pairs so every digit's elements land contiguously,
//     preserving each block's input order within a digit.
//   - BuildSpine is the thin reference upstream: it counts digits over the
//     identical work plan and scans them digit-major. The real upstream
//     pass remains an external collaborator; this helper exists so the
//     downsweep is testable end to end.
//
// Why
//
//	This package is the framework's reuse boundary: kernelcfg, workdist,
//	grid and rakingscan are consumed unchanged, with the scan generalized
//	from the expansion engine's two channels to 2^radix channels. The only
//	scatter-specific code is digit decode and the per-block running
//	consumption that turns tile-relative ranks into global offsets.
//
// Scheduling
//
//	The spine counts each block's statically planned range, so the
//	downsweep requires the static schedule; a configuration with work
//	stealing enabled is rejected at construction.
//
// Errors
//
//   - ErrRadixBits for a radix outside [1,6] or past bit 32 with the given
//     shift.
//   - ErrWorkStealing for a stealing configuration.
//   - ErrLengthMismatch if values or outputs do not match the key count.
//   - ErrSpineShape if the spine is not digits × gridSize for this input.
//   - kernelcfg.ErrInvalidConfig (wrapped) for an unlaunchable
//     configuration.
package scatter
