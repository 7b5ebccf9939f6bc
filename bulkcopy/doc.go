// Package bulkcopy moves []uint32 payloads through the block framework:
// the input is planned into grain-aligned ranges, blocks copy full tiles
// with the bulk move and walk guarded tails element by element.
//
// What
//
//   - Copier: one tuned copy kernel bound to a profile.
//   - SmallConfig and LargeConfig: the two precompiled presets, shallow
//     tiles for short inputs, deep vectorized tiles for long ones.
//   - Dispatcher: both presets behind a size-class registry; Copy selects
//     an entry by element count and runs it. This is the framework's
//     simplest client and the dispatcher's end-to-end demonstration.
//
// Usage
//
//	bc, err := bulkcopy.NewDispatcher(arch.Current())
//	if err != nil { ... }
//	if err := bc.Copy(ctx, dst, src); err != nil { ... }
//
// Errors
//
//   - ErrLengthMismatch when dst and src lengths differ.
//   - kernelcfg.ErrInvalidConfig (wrapped) for an unlaunchable
//     configuration at construction.
package bulkcopy
