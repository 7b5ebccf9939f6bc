// Package dispatch selects one precompiled kernel specialization per
// launch from a closed registry keyed by (architecture tag, size class).
//
// What
//
//   - SizeClass: Small or Large, chosen by SelectClass against one fixed
//     element-count threshold.
//   - Registry: a generic table of entries, each a launchable derived
//     configuration paired with a kernel value. Register derives and
//     validates the configuration; Resolve returns the matching entry.
//
// Why
//
//	Specialization happens once, at setup. A configuration that cannot
//	launch (occupancy zero, broken geometry) is rejected by Register, so
//	Resolve can never hand out an unlaunchable entry and kernels never
//	branch on tuning parameters in their hot path.
//
// Usage
//
//	reg := dispatch.NewRegistry[myKernel]()
//	if err := reg.Register(prof, dispatch.Large, tuned, k); err != nil { ... }
//	e, err := reg.Resolve(prof.Tag, dispatch.SelectClass(n, threshold))
//
// Registration is setup-time work: Register is not safe for concurrent
// use, Resolve is safe once registration has finished.
//
// Errors
//
//   - ErrInvalidEntry for a configuration that could never launch.
//   - ErrDuplicateEntry for a key registered twice.
//   - ErrNoEntry when Resolve finds nothing; a missing entry is a setup
//     defect, not a run-time condition.
package dispatch
